package content

// Kind distinguishes the three unit types a corpus may contain.
type Kind string

const (
	// KindLab is a single hands-on lesson, usually belonging to a course.
	KindLab Kind = "lab"
	// KindCourse is an ordered collection of labs.
	KindCourse Kind = "course"
	// KindProject is a standalone capstone artifact.
	KindProject Kind = "project"
)

// Raw is one untyped frontmatter record as handed over by a loader: plain
// key/value data, not yet validated.
type Raw map[string]any

// Unit is the canonical, validated form of one learning artifact.
type Unit struct {
	// Slug is the globally unique, build-stable identity of the unit.
	Slug string
	// Kind is the unit type.
	Kind Kind
	// Title and Description are display strings; the graph logic never
	// reads them.
	Title       string
	Description string
	// Prerequisites lists the slugs this unit depends on, in declaration
	// order. Entries are resolved against the full corpus later, never at
	// normalization time, because forward references across files are legal.
	Prerequisites []string
	// Order is an optional hint for tie-breaking within a course. Nil means
	// the author expressed no preference.
	Order *int
	// CourseSlug back-references the course a lab belongs to, if any.
	CourseSlug string
}

// HasOrder reports whether the unit carries an explicit order hint.
func (u *Unit) HasOrder() bool {
	return u.Order != nil
}
