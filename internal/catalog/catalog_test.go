package catalog

import "testing"

func TestDefault(t *testing.T) {
	c := Default()

	if c.Len() != 11 {
		t.Errorf("Len() = %d, want 11", c.Len())
	}
	if c.Version() != Version {
		t.Errorf("Version() = %q, want %q", c.Version(), Version)
	}

	for _, def := range c.All() {
		if len(def.Columns) == 0 {
			t.Errorf("%s has no columns", def.Name)
		}
		if def.Columns[0].Name != "name" {
			t.Errorf("%s first column = %q, want name", def.Name, def.Columns[0].Name)
		}
	}
}

func TestLookup(t *testing.T) {
	c := Default()

	tests := []struct {
		title    string
		wantName string
		wantOK   bool
	}{
		{"Language Items", "Language", true},
		{"HCP Type Items", "HCP_Type", true},
		{"HCP Type", "HCP_Type", true},
		{"hcp_type", "HCP_Type", true},
		{" Country ", "Country", true},
		{"Currency Items", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		def, ok := c.Lookup(tt.title)
		if ok != tt.wantOK {
			t.Errorf("Lookup(%q) ok = %v, want %v", tt.title, ok, tt.wantOK)
			continue
		}
		if def.Name != tt.wantName {
			t.Errorf("Lookup(%q) name = %q, want %q", tt.title, def.Name, tt.wantName)
		}
	}
}

func TestAll_SortedByName(t *testing.T) {
	all := Default().All()
	for i := 1; i < len(all); i++ {
		if all[i-1].Name > all[i].Name {
			t.Errorf("All() not sorted: %q before %q", all[i-1].Name, all[i].Name)
		}
	}
}

func TestNew_PanicsOnDuplicate(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("New() with duplicate title did not panic")
		}
	}()

	New("test",
		Picklist{SheetTitle: "Level Items", Name: "Level"},
		Picklist{SheetTitle: "Level Items", Name: "Level2"},
	)
}
