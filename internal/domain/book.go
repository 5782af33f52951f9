// Package domain contains the core business entities and domain logic for the university library catalog.
package domain

import "time"

// NewBookWindow is how far back a book's creation date may lie for the
// book to still count as a new arrival.
const NewBookWindow = 5 * 30 * 24 * time.Hour

// Book is a catalog item normalized from the upstream library API.
// Localized fields (classification names, language, alphabet, status) are
// resolved to the configured locale at normalization time.
type Book struct {
	ID              string           `json:"id"`
	Title           string           `json:"title"`
	Author          string           `json:"author,omitempty"`
	Year            int              `json:"year,omitempty"`
	PageCount       int              `json:"page_count,omitempty"`
	AvailableCount  int              `json:"available_count"`
	Description     string           `json:"description,omitempty"`
	CoverURL        string           `json:"cover_url,omitempty"`
	PDFURL          string           `json:"pdf_url,omitempty"`
	PDFSize         int64            `json:"pdf_size,omitempty"`
	Language        string           `json:"language,omitempty"`
	Alphabet        string           `json:"alphabet,omitempty"`
	Status          string           `json:"status,omitempty"`
	Classifications []Classification `json:"classifications"`
	CreatedAt       time.Time        `json:"created_at"`
	UpdatedAt       time.Time        `json:"updated_at"`
}

// Classification is one category/department pair attached to a book.
// A book may carry several pairs; a book with none is unclassified.
type Classification struct {
	CategoryID     string `json:"category_id"`
	DepartmentID   string `json:"department_id"`
	CategoryName   string `json:"category_name,omitempty"`
	DepartmentName string `json:"department_name,omitempty"`
}

// Primary returns the first classification pair, or the zero value when the
// book is unclassified. Detail views that present a single pair use this.
func (b *Book) Primary() Classification {
	if len(b.Classifications) == 0 {
		return Classification{}
	}
	return b.Classifications[0]
}

// IsClassified reports whether the book carries at least one
// category/department pair.
func (b *Book) IsClassified() bool {
	return len(b.Classifications) > 0
}

// HasCategory reports whether any classification pair carries the category.
func (b *Book) HasCategory(categoryID string) bool {
	if categoryID == "" {
		return false
	}
	for _, c := range b.Classifications {
		if c.CategoryID == categoryID {
			return true
		}
	}
	return false
}

// HasDepartment reports whether any classification pair carries the department.
func (b *Book) HasDepartment(departmentID string) bool {
	if departmentID == "" {
		return false
	}
	for _, c := range b.Classifications {
		if c.DepartmentID == departmentID {
			return true
		}
	}
	return false
}

// SharesCategoryAndDepartment reports whether b and other have at least one
// classification pair in common, matching on both category and department.
func (b *Book) SharesCategoryAndDepartment(other *Book) bool {
	for _, c := range other.Classifications {
		if c.CategoryID == "" || c.DepartmentID == "" {
			continue
		}
		for _, bc := range b.Classifications {
			if bc.CategoryID == c.CategoryID && bc.DepartmentID == c.DepartmentID {
				return true
			}
		}
	}
	return false
}

// SharesCategory reports whether b carries any category that other carries.
func (b *Book) SharesCategory(other *Book) bool {
	for _, c := range other.Classifications {
		if b.HasCategory(c.CategoryID) {
			return true
		}
	}
	return false
}

// SharesDepartment reports whether b carries any department that other carries.
func (b *Book) SharesDepartment(other *Book) bool {
	for _, c := range other.Classifications {
		if b.HasDepartment(c.DepartmentID) {
			return true
		}
	}
	return false
}

// IsNew reports whether the book was added within the new-arrival window.
func (b *Book) IsNew(now time.Time) bool {
	if b.CreatedAt.IsZero() {
		return false
	}
	return now.Sub(b.CreatedAt) < NewBookWindow
}

// Category is a top-level catalog grouping.
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Department is a university department a book may belong to.
type Department struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}
