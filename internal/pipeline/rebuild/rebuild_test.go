package rebuild

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"

	"resume-intel/internal/pipeline/segment"
)

func sampleSections() *segment.SectionMap {
	m := segment.NewSectionMap()
	m.Set(segment.KeyContact, "Jane Doe\njane@example.com")
	m.Append(segment.KeySkills, "Python, Go")
	m.Append(segment.KeyExperience, "Engineer at Acme\n- shipped things")
	m.Append(segment.KeySummary, "Seasoned backend engineer.")
	return m
}

func TestRebuildCanonicalOrder(t *testing.T) {
	r := Rebuild(sampleSections(), nil)

	want := []string{"contact", "summary", "experience", "skills"}
	if len(r.Order) != len(want) {
		t.Fatalf("order = %v, want %v", r.Order, want)
	}
	for i, key := range want {
		if r.Order[i] != key {
			t.Fatalf("order = %v, want %v", r.Order, want)
		}
	}

	// Headers render upper-cased with matching underlines.
	if !strings.Contains(r.ATSText, "EXPERIENCE\n==========") {
		t.Fatalf("missing underlined header:\n%s", r.ATSText)
	}
	if strings.Index(r.ATSText, "SUMMARY") > strings.Index(r.ATSText, "EXPERIENCE") {
		t.Fatal("summary should precede experience")
	}
}

func TestRebuildAppendsMissingKeywords(t *testing.T) {
	r := Rebuild(sampleSections(), []string{"Docker", "Python", "Kubernetes"})

	skills := r.Sections[segment.KeySkills]
	if !strings.Contains(skills, "- Docker") || !strings.Contains(skills, "- Kubernetes") {
		t.Fatalf("keywords not appended: %q", skills)
	}
	// Python is already present and must not be duplicated.
	if strings.Count(strings.ToLower(skills), "python") != 1 {
		t.Fatalf("python duplicated: %q", skills)
	}
}

func TestRebuildCreatesSkillsSectionForKeywords(t *testing.T) {
	m := segment.NewSectionMap()
	m.Set(segment.KeyContact, "Jane Doe")
	m.Append(segment.KeyExperience, "worked")

	r := Rebuild(m, []string{"Docker"})
	if !strings.Contains(r.Sections[segment.KeySkills], "- Docker") {
		t.Fatalf("skills section not created: %+v", r.Sections)
	}
	// Skills must still land after experience per canonical order.
	last := r.Order[len(r.Order)-1]
	if last != segment.KeySkills {
		t.Fatalf("order = %v, want skills last", r.Order)
	}
}

func TestRebuildSkipsEmptySections(t *testing.T) {
	m := segment.NewSectionMap() // contact registered but empty
	m.Append(segment.KeySummary, "hello there")

	r := Rebuild(m, nil)
	if strings.Contains(r.ATSText, "CONTACT") {
		t.Fatalf("empty contact section rendered:\n%s", r.ATSText)
	}
}

func TestRenderDOCXProducesArchive(t *testing.T) {
	sections := sampleSections()
	sections.Append(segment.KeyExperience, "Led R&D at <Acme>")
	r := Rebuild(sections, []string{"Docker"})

	data, err := RenderDOCX(r)
	if err != nil {
		t.Fatalf("RenderDOCX: %v", err)
	}

	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip archive: %v", err)
	}

	var docXML string
	for _, f := range zr.File {
		if f.Name != "word/document.xml" {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open document.xml: %v", err)
		}
		raw, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read document.xml: %v", err)
		}
		docXML = string(raw)
	}
	if docXML == "" {
		t.Fatal("archive has no word/document.xml")
	}

	// Contact lines are centered, section headings are bold and upper-cased.
	if !strings.Contains(docXML, `<w:jc w:val="center"/>`) {
		t.Fatal("contact block not centered")
	}
	if !strings.Contains(docXML, "<w:rPr><w:b/></w:rPr><w:t xml:space=\"preserve\">EXPERIENCE</w:t>") {
		t.Fatalf("experience heading not bold:\n%s", docXML)
	}
	if !strings.Contains(docXML, "Docker") {
		t.Fatal("appended keyword missing from document")
	}
	// Reserved XML characters in resume text must be escaped.
	if !strings.Contains(docXML, "Led R&amp;D at &lt;Acme&gt;") {
		t.Fatalf("special characters not escaped:\n%s", docXML)
	}
	if strings.Contains(docXML, "<Acme>") {
		t.Fatal("raw angle brackets leaked into document xml")
	}
}
