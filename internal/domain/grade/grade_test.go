package grade

import "testing"

func ptr(s string) *string { return &s }

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		label *string
		want  Category
	}{
		{"nil", nil, Unknown},
		{"empty", ptr(""), Unknown},
		{"sahih", ptr("Sahih"), Sahih},
		{"upper", ptr("SAHIH"), Sahih},
		{"hasan sahih", ptr("Hasan Sahih"), Sahih},
		{"sahih with weak chain", ptr("Sahih li ghairihi, weak isnad"), Sahih},
		{"hasan", ptr("Hasan"), Hasan},
		{"daif apostrophe", ptr("Da'if"), Daif},
		{"daif curly", ptr("Da’if"), Daif},
		{"daif plain", ptr("Daif jiddan"), Daif},
		{"weak", ptr("Weak"), Daif},
		{"mawdu", ptr("Mawdu'"), Fabricated},
		{"fabricated", ptr("Fabricated"), Fabricated},
		{"no match", ptr("Munkar"), Unknown},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Classify(tc.label); got != tc.want {
				t.Errorf("Classify() = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestStyleFor(t *testing.T) {
	for _, c := range []Category{Sahih, Hasan, Daif, Fabricated, Unknown} {
		s := StyleFor(c)
		if s.Fill == "" || s.Foreground == "" || s.Indicator == "" {
			t.Errorf("StyleFor(%q) has empty color: %+v", c, s)
		}
	}
	if StyleFor("bogus") != StyleFor(Unknown) {
		t.Error("unrecognized category should use the Unknown style")
	}
}

func TestLabel(t *testing.T) {
	if Daif.Label() != "Da'if" {
		t.Errorf("Daif.Label() = %q", Daif.Label())
	}
	if Unknown.Label() != "Ungraded" {
		t.Errorf("Unknown.Label() = %q", Unknown.Label())
	}
}
