package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/kevtrend/pkg/domain/model"
	"github.com/secmon-lab/kevtrend/pkg/domain/types"
)

func testRecord() model.Record {
	return model.Record{
		CVEID:                      "CVE-2023-0001",
		VendorProject:              "Acme",
		Product:                    "Widget",
		DateAdded:                  time.Date(2023, time.January, 15, 0, 0, 0, 0, time.UTC),
		CWEs:                       "CWE-79,CWE-89",
		KnownRansomwareCampaignUse: "known",
	}
}

func TestSelectionMatchYears(t *testing.T) {
	r := testRecord()

	t.Run("empty years matches any record", func(t *testing.T) {
		sel := model.Selection{}
		gt.True(t, sel.Match(&r))
	})

	t.Run("matching year passes", func(t *testing.T) {
		sel := model.Selection{Years: []int{2022, 2023}}
		gt.True(t, sel.Match(&r))
	})

	t.Run("non-matching year fails", func(t *testing.T) {
		sel := model.Selection{Years: []int{2021}}
		gt.False(t, sel.Match(&r))
	})
}

func TestSelectionMatchVendors(t *testing.T) {
	r := testRecord()

	t.Run("vendor match is exact", func(t *testing.T) {
		sel := model.Selection{Vendors: []string{"Acme"}}
		gt.True(t, sel.Match(&r))

		sel = model.Selection{Vendors: []string{"acme"}}
		gt.False(t, sel.Match(&r))
	})

	t.Run("any listed vendor suffices", func(t *testing.T) {
		sel := model.Selection{Vendors: []string{"Globex", "Acme"}}
		gt.True(t, sel.Match(&r))
	})
}

func TestSelectionMatchCWEs(t *testing.T) {
	r := testRecord()

	t.Run("matches against the raw unsplit text", func(t *testing.T) {
		// "CWE-7" is a substring of "CWE-79", so it matches
		sel := model.Selection{CWEs: []string{"CWE-7"}}
		gt.True(t, sel.Match(&r))
	})

	t.Run("substring must be contiguous", func(t *testing.T) {
		// "CWE-9" appears in neither "CWE-79" nor "CWE-89"
		sel := model.Selection{CWEs: []string{"CWE-9"}}
		gt.False(t, sel.Match(&r))
	})

	t.Run("one matching fragment suffices", func(t *testing.T) {
		sel := model.Selection{CWEs: []string{"CWE-404", "CWE-89"}}
		gt.True(t, sel.Match(&r))
	})

	t.Run("empty fragments are ignored", func(t *testing.T) {
		sel := model.Selection{CWEs: []string{""}}
		gt.False(t, sel.Match(&r))
	})
}

func TestSelectionMatchRansomware(t *testing.T) {
	known := testRecord()
	unknown := testRecord()
	unknown.KnownRansomwareCampaignUse = ""

	t.Run("all mode ignores the field", func(t *testing.T) {
		sel := model.Selection{Ransomware: types.RansomwareAll}
		gt.True(t, sel.Match(&known))
		gt.True(t, sel.Match(&unknown))
	})

	t.Run("known mode keeps only confirmed records", func(t *testing.T) {
		sel := model.Selection{Ransomware: types.RansomwareKnown}
		gt.True(t, sel.Match(&known))
		gt.False(t, sel.Match(&unknown))
	})

	t.Run("unknown mode keeps everything not confirmed", func(t *testing.T) {
		sel := model.Selection{Ransomware: types.RansomwareUnknown}
		gt.False(t, sel.Match(&known))
		gt.True(t, sel.Match(&unknown))
	})

	t.Run("zero mode behaves as all", func(t *testing.T) {
		sel := model.Selection{}
		gt.True(t, sel.Match(&known))
		gt.True(t, sel.Match(&unknown))
	})
}

func TestSelectionMatchCombined(t *testing.T) {
	r := testRecord()

	t.Run("axes combine with AND", func(t *testing.T) {
		sel := model.Selection{
			Years:      []int{2023},
			Vendors:    []string{"Acme"},
			CWEs:       []string{"CWE-79"},
			Ransomware: types.RansomwareKnown,
		}
		gt.True(t, sel.Match(&r))

		sel.Vendors = []string{"Globex"}
		gt.False(t, sel.Match(&r))
	})
}

func TestSelectionValidate(t *testing.T) {
	t.Run("zero selection is valid", func(t *testing.T) {
		sel := model.Selection{}
		gt.NoError(t, sel.Validate())
	})

	t.Run("rejects invalid ransomware mode", func(t *testing.T) {
		sel := model.Selection{Ransomware: types.RansomwareMode("maybe")}
		gt.Error(t, sel.Validate())
	})

	t.Run("rejects non-positive year", func(t *testing.T) {
		sel := model.Selection{Years: []int{0}}
		gt.Error(t, sel.Validate())
	})
}

func TestSelectionIsZero(t *testing.T) {
	gt.True(t, (&model.Selection{}).IsZero())
	gt.True(t, (&model.Selection{Ransomware: types.RansomwareAll}).IsZero())
	gt.False(t, (&model.Selection{Years: []int{2023}}).IsZero())
	gt.False(t, (&model.Selection{Ransomware: types.RansomwareKnown}).IsZero())
}

func TestRecordRansomwareKnown(t *testing.T) {
	t.Run("normalization lowercases and trims", func(t *testing.T) {
		gt.Equal(t, model.NormalizeRansomwareUse("  Known \n"), "known")
		gt.Equal(t, model.NormalizeRansomwareUse(""), "")
	})

	t.Run("only the canonical value counts as known", func(t *testing.T) {
		r := model.Record{KnownRansomwareCampaignUse: "known"}
		gt.True(t, r.RansomwareKnown())

		r.KnownRansomwareCampaignUse = "unknown"
		gt.False(t, r.RansomwareKnown())

		r.KnownRansomwareCampaignUse = ""
		gt.False(t, r.RansomwareKnown())
	})
}

func TestRecordCWETokens(t *testing.T) {
	t.Run("splits and trims", func(t *testing.T) {
		r := model.Record{CWEs: "CWE-79, CWE-89 ,CWE-22"}
		gt.Equal(t, r.CWETokens(), []string{"CWE-79", "CWE-89", "CWE-22"})
	})

	t.Run("empty text yields no tokens", func(t *testing.T) {
		r := model.Record{}
		gt.Nil(t, r.CWETokens())
	})

	t.Run("drops empty segments", func(t *testing.T) {
		r := model.Record{CWEs: "CWE-79,,"}
		gt.Equal(t, r.CWETokens(), []string{"CWE-79"})
	})
}
