package integrations

import "testing"

func TestFrameworkCatalog(t *testing.T) {
	catalog, err := FrameworkCatalog()
	if err != nil {
		t.Fatalf("FrameworkCatalog() failed: %v", err)
	}
	if len(catalog) == 0 {
		t.Fatal("framework catalog is empty")
	}

	seen := map[string]bool{}
	for _, f := range catalog {
		if seen[f.Slug] {
			t.Errorf("duplicate framework slug %q", f.Slug)
		}
		seen[f.Slug] = true
	}
	if !seen["react"] {
		t.Error("catalog is missing react")
	}

	catalog[0].Name = "mutated"
	again, _ := FrameworkCatalog()
	if again[0].Name == "mutated" {
		t.Error("FrameworkCatalog() returned a shared slice")
	}
}

func TestParseFrameworksRejectsIncompleteEntries(t *testing.T) {
	data := []byte("- name: React\n- docsLink: https://example.com\n")
	if _, err := ParseFrameworks(data); err == nil {
		t.Fatal("expected an error for entries without name or docsLink")
	}
}

func TestParseFrameworksMalformed(t *testing.T) {
	if _, err := ParseFrameworks([]byte("name: [unclosed")); err == nil {
		t.Fatal("expected a parse error")
	}
}
