package feed

import (
	"bytes"
	"os"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/kevtrend/pkg/domain/model"
)

// csvRow mirrors the column names of the CISA KEV catalog CSV. Dates stay
// raw here so rows with unparseable dates can be dropped instead of
// failing the whole decode.
type csvRow struct {
	CVEID                      string `csv:"cveID"`
	VendorProject              string `csv:"vendorProject"`
	Product                    string `csv:"product"`
	VulnerabilityName          string `csv:"vulnerabilityName"`
	DateAdded                  string `csv:"dateAdded"`
	ShortDescription           string `csv:"shortDescription"`
	RequiredAction             string `csv:"requiredAction"`
	DueDate                    string `csv:"dueDate"`
	KnownRansomwareCampaignUse string `csv:"knownRansomwareCampaignUse"`
	Notes                      string `csv:"notes"`
	CWEs                       string `csv:"cwes"`
}

// The CSV export uses plain dates; the JSON mirror of the catalog carries
// RFC3339 timestamps, so both are accepted.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(raw string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Result is one decoded catalog with its cleaning summary
type Result struct {
	Dataset *model.Dataset
	Dropped int
}

// Decode parses catalog CSV bytes into a dataset. Rows whose dateAdded
// does not parse are dropped and counted; the ransomware field is
// normalized for matching.
func Decode(data []byte) (*Result, error) {
	var rows []csvRow
	if err := gocsv.UnmarshalBytes(bytes.TrimPrefix(data, []byte("\xef\xbb\xbf")), &rows); err != nil {
		return nil, goerr.Wrap(err, "failed to decode catalog CSV")
	}

	records := make([]model.Record, 0, len(rows))
	dropped := 0
	for _, row := range rows {
		dateAdded, ok := parseDate(row.DateAdded)
		if !ok {
			dropped++
			continue
		}
		records = append(records, model.Record{
			CVEID:                      row.CVEID,
			VendorProject:              row.VendorProject,
			Product:                    row.Product,
			VulnerabilityName:          row.VulnerabilityName,
			DateAdded:                  dateAdded,
			ShortDescription:           row.ShortDescription,
			RequiredAction:             row.RequiredAction,
			DueDate:                    row.DueDate,
			KnownRansomwareCampaignUse: model.NormalizeRansomwareUse(row.KnownRansomwareCampaignUse),
			Notes:                      row.Notes,
			CWEs:                       row.CWEs,
		})
	}

	return &Result{
		Dataset: model.NewDataset(records),
		Dropped: dropped,
	}, nil
}

// LoadFile decodes a catalog CSV from the local filesystem
func LoadFile(path string) (*Result, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read catalog file",
			goerr.V("path", path))
	}
	return Decode(data)
}
