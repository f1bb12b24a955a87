package model

import "fmt"

type PostType string

const (
	PostTypeArticle PostType = "article"
	PostTypeCatalog PostType = "catalog"
)

func (t PostType) IsValid() error {
	switch t {
	case PostTypeArticle, PostTypeCatalog:
		return nil
	}
	return fmt.Errorf("invalid post type: %s", t)
}

func (t *PostType) UnmarshalText(text []byte) error {
	pt := PostType(text)
	if err := pt.IsValid(); err != nil {
		return err
	}
	*t = pt
	return nil
}

type Category string

const (
	CategoryEducation Category = "education"
	CategoryMedicine  Category = "medicine"
	CategoryIndustry  Category = "industry"
	CategoryIT        Category = "it"
	CategoryAuto      Category = "auto"
)

func (c Category) IsValid() error {
	switch c {
	case CategoryEducation, CategoryMedicine, CategoryIndustry, CategoryIT, CategoryAuto:
		return nil
	}
	return fmt.Errorf("invalid category: %s", c)
}

func (c *Category) UnmarshalText(text []byte) error {
	cat := Category(text)
	if err := cat.IsValid(); err != nil {
		return err
	}
	*c = cat
	return nil
}

// AllowedFor reports whether the category may be used with the given post
// type. Catalog listings do not offer the automotive category.
func (c Category) AllowedFor(t PostType) bool {
	if t == PostTypeCatalog && c == CategoryAuto {
		return false
	}
	return true
}
