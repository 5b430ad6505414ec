package library_test

import (
	"reflect"
	"testing"

	"github.com/incluempleo/vinculo/inclusion/library"
	"github.com/incluempleo/vinculo/pkg/kernel"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Guía de Contratación Inclusiva", "guia-de-contratacion-inclusiva"},
		{"  Señales de Accesibilidad  ", "senales-de-accesibilidad"},
		{"Ley 1618 / 2466: resumen", "ley-1618-2466-resumen"},
		{"ÚNICO", "unico"},
		{"---", ""},
	}
	for _, c := range cases {
		if got := library.Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func validResource() *library.Resource {
	return &library.Resource{
		ID:          kernel.ResourceID("r1"),
		CategoryID:  kernel.CategoryID("c1"),
		Title:       "Guía de onboarding accesible",
		Slug:        "guia-de-onboarding-accesible",
		Type:        library.TypeGuide,
		Description: "Pasos para un primer día sin barreras",
		Content:     "Contenido de la guía",
	}
}

func TestResourceValidate(t *testing.T) {
	if err := validResource().Validate(); err != nil {
		t.Fatalf("valid resource rejected: %v", err)
	}

	cases := []struct {
		name   string
		mutate func(*library.Resource)
	}{
		{"blank title", func(r *library.Resource) { r.Title = "  " }},
		{"missing category", func(r *library.Resource) { r.CategoryID = "" }},
		{"bad type", func(r *library.Resource) { r.Type = "PODCAST" }},
		{"blank description", func(r *library.Resource) { r.Description = "" }},
		{"no content anywhere", func(r *library.Resource) {
			r.Content = ""
			r.FilePath = ""
			r.ExternalURL = ""
		}},
	}
	for _, c := range cases {
		r := validResource()
		c.mutate(r)
		if err := r.Validate(); err == nil {
			t.Errorf("%s: Validate() accepted the resource", c.name)
		}
	}
}

func TestResourceValidate_FileOrLinkSuffices(t *testing.T) {
	r := validResource()
	r.Content = ""
	r.FilePath = "library/resources/2026/08/guia.pdf"
	if err := r.Validate(); err != nil {
		t.Errorf("attached file alone must satisfy the content rule: %v", err)
	}

	r = validResource()
	r.Content = ""
	r.ExternalURL = "https://www.mintrabajo.gov.co/guia"
	if err := r.Validate(); err != nil {
		t.Errorf("external link alone must satisfy the content rule: %v", err)
	}
}

func TestTagsList(t *testing.T) {
	r := validResource()
	r.Tags = "reclutamiento, accesibilidad , , onboarding"
	want := []string{"reclutamiento", "accesibilidad", "onboarding"}
	if got := r.TagsList(); !reflect.DeepEqual(got, want) {
		t.Errorf("TagsList() = %v, want %v", got, want)
	}

	r.Tags = "   "
	if got := r.TagsList(); len(got) != 0 {
		t.Errorf("blank tags must yield an empty list, got %v", got)
	}
}

func TestFileSizeDisplay(t *testing.T) {
	cases := []struct {
		size int64
		want string
	}{
		{0, "N/A"},
		{512, "512.0 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
	}
	for _, c := range cases {
		r := validResource()
		r.FileSize = c.size
		if got := r.FileSizeDisplay(); got != c.want {
			t.Errorf("FileSizeDisplay(%d) = %q, want %q", c.size, got, c.want)
		}
	}
}

func TestCategoryValidate(t *testing.T) {
	c := &library.Category{Name: "Buenas prácticas"}
	if err := c.Validate(); err != nil {
		t.Fatalf("valid category rejected: %v", err)
	}
	c.Name = " "
	if err := c.Validate(); err == nil {
		t.Error("blank category name must be rejected")
	}
}
