package enums

import "fmt"

// InquiryType tags a contact-form submission with its intent.
type InquiryType string

const (
	InquiryTypeDocumentRequest InquiryType = "document_request"
	InquiryTypeDemoRequest     InquiryType = "demo_request"
	InquiryTypePress           InquiryType = "press"
	InquiryTypeContact         InquiryType = "contact"
	InquiryTypeOther           InquiryType = "other"
)

var validInquiryTypes = []InquiryType{
	InquiryTypeDocumentRequest,
	InquiryTypeDemoRequest,
	InquiryTypePress,
	InquiryTypeContact,
	InquiryTypeOther,
}

// inquiryTypeLabels holds the Japanese display labels used in mail subjects.
var inquiryTypeLabels = map[InquiryType]string{
	InquiryTypeDocumentRequest: "資料請求",
	InquiryTypeDemoRequest:     "デモ版を試したい",
	InquiryTypePress:           "取材申し込み",
	InquiryTypeContact:         "お問い合わせ",
	InquiryTypeOther:           "その他",
}

// String implements fmt.Stringer.
func (t InquiryType) String() string {
	return string(t)
}

// IsValid reports whether the value matches a known InquiryType.
func (t InquiryType) IsValid() bool {
	for _, candidate := range validInquiryTypes {
		if candidate == t {
			return true
		}
	}
	return false
}

// Label returns the Japanese display label, falling back to the raw value.
func (t InquiryType) Label() string {
	if label, ok := inquiryTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// ParseInquiryType converts raw input into an InquiryType.
func ParseInquiryType(value string) (InquiryType, error) {
	for _, candidate := range validInquiryTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid inquiry type %q", value)
}
