package notifications

import (
	"fmt"

	"github.com/aquaplan/aquatutor-backend/pkg/enums"
	"github.com/aquaplan/aquatutor-backend/pkg/resend"
)

// Template identifiers used as metric labels.
const (
	TemplateContractPDF        = "contract_pdf"
	TemplateSignatureRequest   = "signature_request"
	TemplateApplicantConfirm   = "applicant_confirmation"
	TemplateOperatorNewApp     = "operator_new_application"
	TemplateInquiryConfirm     = "inquiry_confirmation"
	TemplateInquiryNotify      = "inquiry_notification"
	TemplateSignatureCompleted = "signature_completed"
	TemplateAdHoc              = "ad_hoc"
	contractAttachmentFilename = "aqua_application.pdf"
	mailFooterService          = "AquaTutorAI"
	mailFooterCompany          = "アクア・プラン株式会社"
)

// ContractPDFMail wraps the generated agreement PDF for delivery.
func ContractPDFMail(pdfBase64 string) Message {
	return Message{
		Template: TemplateContractPDF,
		Subject:  "契約書（PDF）をお送りします",
		HTML: `
<p>契約書を PDF でお送りいたします。</p>
<p>添付ファイルをご確認のうえ、ご署名手続きへお進みください。</p>
<p style="color:#666;font-size:12px;">本メールに心当たりがない場合は破棄してください。</p>
`,
		Text: `契約書を PDF でお送りいたします。
添付ファイルをご確認のうえ、ご署名手続きへお進みください。

※本メールに心当たりがない場合は破棄してください。
`,
		Attachments: []resend.Attachment{
			{Filename: contractAttachmentFilename, Content: pdfBase64},
		},
	}
}

// SignatureRequestMail asks the customer to review and sign via the link.
func SignatureRequestMail(signatureLink string) Message {
	return Message{
		Template: TemplateSignatureRequest,
		Subject:  "契約書の確認とご署名のお願い",
		HTML: fmt.Sprintf(`
<p>契約書のご確認をお願いいたします。</p>
<p>以下のリンクから契約書の内容をご確認いただき、ご署名をお願いいたします。</p>
<p><a href="%s">契約書の確認とご署名</a></p>
<p style="color: #666; font-size: 12px;">※本メールに心当たりがない場合は、破棄していただきますようお願いいたします。</p>
`, signatureLink),
		Text: fmt.Sprintf(`契約書のご確認をお願いいたします。

以下のリンクから契約書の内容をご確認いただき、ご署名をお願いいたします。
%s

※本メールに心当たりがない場合は、破棄していただきますようお願いいたします。
`, signatureLink),
	}
}

// ApplicantConfirmationMail thanks the applicant for applying.
func ApplicantConfirmationMail(representativeName string) Message {
	return Message{
		Template: TemplateApplicantConfirm,
		Subject:  "【AquaTutorAI】お申し込みありがとうございます",
		HTML: fmt.Sprintf(`
<h2>お申し込みを受け付けました</h2>
<p>%s 様</p>
<p>内容を確認次第、担当者よりご連絡させていただきます。</p>
<hr>
<p>%s</p>
<p>%s</p>
`, representativeName, mailFooterService, mailFooterCompany),
	}
}

// OperatorNewApplicationMail notifies the operator of a fresh application.
func OperatorNewApplicationMail(companyName, representativeName, contactName, contactEmail string) Message {
	return Message{
		Template: TemplateOperatorNewApp,
		Subject:  fmt.Sprintf("【新規申込】%s様", companyName),
		HTML: fmt.Sprintf(`
<h2>新規申込を受け付けました</h2>
<p>会社名：%s</p>
<p>代表者：%s</p>
<p>担当者：%s</p>
<p>メール：%s</p>
`, companyName, representativeName, contactName, contactEmail),
	}
}

// InquiryFields carries the submitted inquiry content into both inquiry mails.
type InquiryFields struct {
	FirstType          enums.InquiryType
	CompanyName        string
	RepresentativeName string
	Email              string
	Phone              string
	Body               string
}

// InquiryConfirmationMail is the auto-reply to the inquirer. The subject
// carries the Japanese label of the first submitted type tag.
func InquiryConfirmationMail(f InquiryFields) Message {
	label := f.FirstType.Label()
	return Message{
		Template: TemplateInquiryConfirm,
		Subject:  fmt.Sprintf("【%s】お問い合わせありがとうございます", label),
		Text: fmt.Sprintf(`%s 様

この度は、AquaTutorAIにお問い合わせいただき、誠にありがとうございます。
以下の内容で承りました。

お問い合わせ種別: %s
会社名: %s
代表者名: %s
メールアドレス: %s
電話番号: %s
お問い合わせ内容:
%s

内容を確認次第、担当者よりご連絡させていただきます。
今しばらくお待ちくださいますようお願い申し上げます。

※本メールは自動送信です。このメールに返信いただいてもご回答できかねますのでご了承ください。

--
%s
%s
`, f.RepresentativeName, label, f.CompanyName, f.RepresentativeName, f.Email, f.Phone, f.Body, mailFooterService, mailFooterCompany),
		HTML: fmt.Sprintf(`
<html>
<body style="font-family: sans-serif; line-height: 1.6; color: #333;">
  <h2>お問い合わせありがとうございます</h2>
  <p>%s 様</p>
  <p>この度は、AquaTutorAIにお問い合わせいただき、誠にありがとうございます。<br>以下の内容で承りました。</p>
  <div style="background: #f5f5f5; padding: 20px; margin: 20px 0; border-radius: 5px;">
    <p><strong>お問い合わせ種別:</strong> %s</p>
    <p><strong>会社名:</strong> %s</p>
    <p><strong>代表者名:</strong> %s</p>
    <p><strong>メールアドレス:</strong> %s</p>
    <p><strong>電話番号:</strong> %s</p>
    <p><strong>お問い合わせ内容:</strong></p>
    <pre style="white-space: pre-wrap;">%s</pre>
  </div>
  <p>内容を確認次第、担当者よりご連絡させていただきます。<br>今しばらくお待ちくださいますようお願い申し上げます。</p>
  <p style="color: #666; font-size: 0.9em;">※本メールは自動送信です。このメールに返信いただいてもご回答できかねますのでご了承ください。</p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #ddd;" />
  <p style="color: #666; font-size: 0.9em;">
    %s<br>
    %s
  </p>
</body>
</html>
`, f.RepresentativeName, label, f.CompanyName, f.RepresentativeName, f.Email, f.Phone, f.Body, mailFooterService, mailFooterCompany),
	}
}

// InquiryOperatorMail notifies the operator of a new inquiry.
func InquiryOperatorMail(f InquiryFields) Message {
	label := f.FirstType.Label()
	return Message{
		Template: TemplateInquiryNotify,
		Subject:  fmt.Sprintf("【%s】新規お問い合わせ", label),
		Text: fmt.Sprintf(`【新規お問い合わせ】

会社名: %s
代表者名: %s
メールアドレス: %s
電話番号: %s
お問い合わせ内容:
%s

※このメールは自動通知です。
`, f.CompanyName, f.RepresentativeName, f.Email, f.Phone, f.Body),
		HTML: fmt.Sprintf(`
<html>
<body style="font-family: sans-serif; line-height: 1.6; color: #333;">
<h2>新規お問い合わせ</h2>
<div style="background: #f5f5f5; padding: 20px; margin: 20px 0; border-radius: 5px;">
  <p><strong>会社名:</strong> %s</p>
  <p><strong>代表者名:</strong> %s</p>
  <p><strong>メールアドレス:</strong> %s</p>
  <p><strong>電話番号:</strong> %s</p>
  <p><strong>お問い合わせ内容:</strong></p>
  <pre style="white-space: pre-wrap;">%s</pre>
</div>
<p style="color: #666; font-size: 0.9em;">※このメールは自動通知です。</p>
</body>
</html>
`, f.CompanyName, f.RepresentativeName, f.Email, f.Phone, f.Body),
	}
}

// SignatureCompletedOperatorMail informs the operator a contract was signed.
func SignatureCompletedOperatorMail(companyName string) Message {
	return Message{
		Template: TemplateSignatureCompleted,
		Subject:  fmt.Sprintf("【契約締結完了】%s様", companyName),
		Text: fmt.Sprintf(`%s様との契約書の締結が完了いたしました。

管理画面から署名済みの申込内容をご確認ください。
`, companyName),
	}
}
