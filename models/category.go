package models

import "fmt"

// Category is one named group of data uses the visitor can consent to
// (e.g. a group of cookies that belong together). Name is the stable key
// used in the cookie and on the wire; Title and Description are passed
// through to the rendering layer unchanged.
type Category struct {
	Name        string `json:"name"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
	IsRequired  bool   `json:"is_required"`
}

// DuplicateCategoryError means a category name was registered twice.
// This is a configuration error and fatal at startup.
type DuplicateCategoryError struct {
	Name string
}

func (e DuplicateCategoryError) Error() string {
	return fmt.Sprintf("consent category already registered: %s", e.Name)
}

// UnknownCategoryError means a category name was queried or submitted that
// was never registered. Surfaced to the caller (400 at the HTTP boundary),
// never silently dropped: a typo here usually means the domains disagree on
// their category configuration.
type UnknownCategoryError struct {
	Name string
}

func (e UnknownCategoryError) Error() string {
	return fmt.Sprintf("unknown consent category: %s", e.Name)
}

// Registry holds the registered categories in insertion order. It is
// append-only during application setup and must be treated as read-only
// once the server starts; concurrent reads need no locking.
type Registry struct {
	categories []Category
	index      map[string]int
}

func NewRegistry() *Registry {
	return &Registry{index: make(map[string]int)}
}

// Register adds a category. Fails with DuplicateCategoryError if the name
// is already taken.
func (r *Registry) Register(name, title, description string, def, isRequired bool) error {
	if _, ok := r.index[name]; ok {
		return DuplicateCategoryError{Name: name}
	}
	r.index[name] = len(r.categories)
	r.categories = append(r.categories, Category{
		Name:        name,
		Title:       title,
		Description: description,
		Default:     def,
		IsRequired:  isRequired,
	})
	return nil
}

// RegisterStandard adds the three common categories: required, preferences
// and analytics. Only "required" is pre-checked and not revocable.
func (r *Registry) RegisterStandard() error {
	if err := r.Register(
		"required",
		"Required",
		"These cookies are required for the site to function, like handling login (remembering who "+
			"you are logged in as between page visits).",
		true, true); err != nil {
		return err
	}
	if err := r.Register(
		"preferences",
		"Preferences",
		"These cookies are used for convenience functionality, like saving local preferences you have made.",
		false, false); err != nil {
		return err
	}
	return r.Register(
		"analytics",
		"Analytics",
		"These cookies are used to track your page visits across the site and record some basic information "+
			"about your browser. We use this information in order to see how our users are using the site, "+
			"allowing us to focus improvements.",
		false, false)
}

// Get looks a category up by name.
func (r *Registry) Get(name string) (Category, bool) {
	i, ok := r.index[name]
	if !ok {
		return Category{}, false
	}
	return r.categories[i], true
}

func (r *Registry) Has(name string) bool {
	_, ok := r.index[name]
	return ok
}

// Categories returns all categories in insertion order. The caller must not
// modify the returned slice.
func (r *Registry) Categories() []Category {
	return r.categories
}

// Names returns all category names in insertion order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.categories))
	for i, c := range r.categories {
		names[i] = c.Name
	}
	return names
}

// RequiredNames returns the names of all is_required categories.
func (r *Registry) RequiredNames() []string {
	var names []string
	for _, c := range r.categories {
		if c.IsRequired {
			names = append(names, c.Name)
		}
	}
	return names
}

func (r *Registry) Len() int {
	return len(r.categories)
}
