package contractdoc

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/aquaplan/aquatutor-backend/pkg/config"
	pkgerrors "github.com/aquaplan/aquatutor-backend/pkg/errors"
	"github.com/jung-kurt/gofpdf"
)

const (
	pageMargin    = 15.0
	bodyFontSize  = 9.0
	titleFontSize = 14.0
	lineHeight    = 4.6
	signatureBoxH = 58.0
)

// Builder renders contract documents as A4 PDFs.
type Builder struct {
	vendor config.VendorConfig
	pdfCfg config.PdfConfig
}

// NewBuilder constructs a contract document builder with the injected vendor
// identity and font configuration.
func NewBuilder(vendor config.VendorConfig, pdfCfg config.PdfConfig) *Builder {
	return &Builder{vendor: vendor, pdfCfg: pdfCfg}
}

// Build renders the service agreement for the provided document. The date in
// the customer signature block is the render-time date.
func (b *Builder) Build(doc Document, now time.Time) ([]byte, error) {
	total, err := ComputeTotal(doc.InitialFee, doc.MonthlyFee, doc.OptionFee)
	if err != nil {
		return nil, err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(true, pageMargin)

	fontName := "Arial"
	if b.pdfCfg.FontPath != "" {
		fontName = b.pdfCfg.FontName
		pdf.AddUTF8Font(fontName, "", b.pdfCfg.FontPath)
	}

	pdf.AddPage()

	pdf.SetFont(fontName, "", titleFontSize)
	pdf.CellFormat(0, 10, b.vendor.ServiceName+" サービス利用契約書", "", 1, "C", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(fontName, "", bodyFontSize)
	writeParagraph := func(text string) {
		pdf.MultiCell(0, lineHeight, text, "", "L", false)
	}
	writeHeading := func(text string) {
		pdf.Ln(1.5)
		pdf.MultiCell(0, lineHeight+0.6, text, "", "L", false)
	}

	writeParagraph(fmt.Sprintf(
		"本契約は、%s（以下「甲」という）と、契約締結書に記載の法人（以下「乙」という）との間で、甲が提供する営業研修支援AIサービス「%s」（以下「本サービス」という）の利用に関して、以下の通り締結される。",
		b.vendor.LegalName, b.vendor.ServiceName))

	writeHeading("第1条（目的）")
	writeParagraph("本契約は、甲が提供する本サービスについて、乙がこれを利用する際の権利義務を定めることを目的とする。")

	writeHeading("第2条（サービス内容）")
	writeParagraph("1. 本サービスは、営業研修に特化した対話型AIによるEラーニング支援システムである。")
	writeParagraph("2. 甲は乙に対して以下の機能・支援を提供する：")
	writeParagraph("(1) 対話型AIによる営業ロールプレイ支援")
	writeParagraph("(2) フィードバック機能")
	writeParagraph("(3) スプレッドシート連携による進捗管理")
	writeParagraph("(4) 多言語対応（必要に応じて）")
	writeParagraph("(5) 初期導入サポートおよび運用ガイド")

	writeHeading("第3条（契約期間）")
	writeParagraph("1. 本契約の有効期間は、契約締結日より1年間とする。")
	writeParagraph("2. 有効期間満了の1ヶ月前までに、いずれか当事者から書面で解約の意思表示がない限り、本契約は同一条件で1年間自動更新されるものとする。")

	writeHeading("第4条（利用料金および支払方法）")
	writeParagraph("1. 乙は以下の料金を甲に支払うものとする：")
	writeParagraph(fmt.Sprintf("契約金額：%s（税別）", FormatAmount(total)))
	writeParagraph("2. 支払いは原則として12ヶ月分一括前払いとする。IT導入補助金を使用しない場合はこの限りではない。")

	b.writeApplicationForm(pdf, fontName, doc)
	if err := b.writeSignatureBlocks(pdf, fontName, doc, now); err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render contract pdf")
	}
	return buf.Bytes(), nil
}

func (b *Builder) writeApplicationForm(pdf *gofpdf.Fpdf, fontName string, doc Document) {
	pdf.Ln(4)
	pdf.SetFont(fontName, "", bodyFontSize+1)
	pdf.CellFormat(0, 7, fmt.Sprintf("【%s 申込書兼利用規約】", b.vendor.ServiceName), "TLR", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", bodyFontSize)

	rows := []struct {
		label string
		value string
	}{
		{"法人名", doc.CompanyName},
		{"所在地", doc.CompanyAddress},
		{"代表者名", doc.RepresentativeName},
		{"担当者名", doc.ContactName},
		{"連絡先", doc.PhoneNumber},
		{"メール", doc.ContactEmail},
		{"初期費用", doc.InitialFee},
		{"月額費用", doc.MonthlyFee},
		{"超過費用", doc.ExcessFee},
		{"オプション費用", doc.OptionFee},
		{"支払方法", doc.PaymentMethod},
	}
	if doc.Notes != "" {
		rows = append(rows, struct {
			label string
			value string
		}{"備考", doc.Notes})
	}

	for i, row := range rows {
		border := "LR"
		if i == len(rows)-1 {
			border = "LRB"
		}
		pdf.CellFormat(40, 6, row.label+"：", border, 0, "L", false, 0, "")
		pdf.CellFormat(0, 6, row.value, border, 1, "L", false, 0, "")
	}
}

func (b *Builder) writeSignatureBlocks(pdf *gofpdf.Fpdf, fontName string, doc Document, now time.Time) error {
	pdf.Ln(6)
	pageW, _ := pdf.GetPageSize()
	boxW := (pageW - 2*pageMargin - 10) / 2
	startX := pageMargin
	startY := pdf.GetY()

	pdf.Rect(startX, startY, boxW, signatureBoxH, "D")
	pdf.Rect(startX+boxW+10, startY, boxW, signatureBoxH, "D")

	write := func(x, y float64, text string) {
		pdf.SetXY(x+3, y)
		pdf.CellFormat(boxW-6, lineHeight, text, "", 0, "L", false, 0, "")
	}

	y := startY + 3
	write(startX, y, "甲：")
	y += lineHeight
	write(startX, y, b.vendor.LegalName)
	y += lineHeight
	write(startX, y, b.vendor.AddressLine1)
	y += lineHeight
	write(startX, y, b.vendor.AddressLine2)
	y += lineHeight
	write(startX, y, b.vendor.Representative)

	custX := startX + boxW + 10
	y = startY + 3
	write(custX, y, "乙：")
	y += lineHeight
	write(custX, y, doc.CompanyName)
	y += lineHeight
	write(custX, y, doc.CompanyAddress)
	y += lineHeight
	write(custX, y, doc.RepresentativeName)
	y += lineHeight
	write(custX, y, fmt.Sprintf("%d年%d月%d日", now.Year(), int(now.Month()), now.Day()))
	y += lineHeight

	if doc.SignatureImage != "" {
		raw, err := decodeSignatureDataURI(doc.SignatureImage)
		if err != nil {
			return err
		}
		name := "signature"
		pdf.RegisterImageOptionsReader(name, gofpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(raw))
		pdf.ImageOptions(name, custX+3, y+1, 42, 17, false, gofpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	}

	pdf.SetY(startY + signatureBoxH + 4)
	return nil
}

func decodeSignatureDataURI(uri string) ([]byte, error) {
	const prefix = "data:image/png;base64,"
	if !strings.HasPrefix(uri, prefix) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signature image must be a png data uri")
	}
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode signature image")
	}
	if len(raw) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "signature image is empty")
	}
	return raw, nil
}
