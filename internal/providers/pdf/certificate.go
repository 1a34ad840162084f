package pdf

import (
	"bytes"
	"context"
	"io"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

type CertificateData struct {
	CouncilName   string
	HolderName    string
	LicenseNumber string
	LicenseType   string
	Status        string
	ValidFrom     string
	ValidTo       string
	IssuedOn      string
}

func (p *PDFProvider) GenerateCertificate(ctx context.Context, data CertificateData) (io.Reader, error) {
	cfg := config.NewBuilder().Build()
	m := maroto.New(cfg)

	m.AddRow(20,
		text.NewCol(12, data.CouncilName, props.Text{
			Size:  16,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(15,
		text.NewCol(12, "Certificate of Registration", props.Text{
			Size:  22,
			Style: fontstyle.Bold,
			Align: align.Center,
			Top:   2,
		}),
	)
	m.AddRow(12,
		text.NewCol(12, "This certifies that", props.Text{
			Size:  10,
			Align: align.Center,
			Top:   2,
		}),
	)
	m.AddRow(14,
		text.NewCol(12, data.HolderName, props.Text{
			Size:  18,
			Style: fontstyle.Bold,
			Align: align.Center,
		}),
	)
	m.AddRow(12,
		text.NewCol(12, "holds license "+data.LicenseNumber+" ("+data.LicenseType+")", props.Text{
			Size:  11,
			Align: align.Center,
			Top:   2,
		}),
	)

	m.AddRow(25,
		col.New(4).Add(
			text.New("Status", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(data.Status, props.Text{Top: 5, Size: 9}),
		),
		col.New(4).Add(
			text.New("Valid from", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(data.ValidFrom, props.Text{Top: 5, Size: 9}),
		),
		col.New(4).Add(
			text.New("Valid to", props.Text{Style: fontstyle.Bold, Size: 9}),
			text.New(data.ValidTo, props.Text{Top: 5, Size: 9}),
		),
	)

	m.AddRow(15,
		text.NewCol(12, "Issued on "+data.IssuedOn, props.Text{
			Size:  9,
			Align: align.Center,
			Top:   5,
		}),
	)

	doc, err := m.Generate()
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(doc.GetBytes()), nil
}
