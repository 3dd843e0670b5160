package vanilla

// ChromeClass is a typed identifier for semantic chrome CSS classes.
type ChromeClass string

const (
	ClassBody    ChromeClass = "formbind-body"
	ClassApp     ChromeClass = "formbind-app"
	ClassHeader  ChromeClass = "formbind-header"
	ClassForm    ChromeClass = "formbind-form"
	ClassErrors  ChromeClass = "formbind-errors"
	ClassRow     ChromeClass = "formbind-row"
	ClassColumn  ChromeClass = "formbind-column"
	ClassGroup   ChromeClass = "formbind-group"
	ClassField   ChromeClass = "formbind-field"
	ClassActions ChromeClass = "formbind-actions"
	ClassButton  ChromeClass = "formbind-button"
)

func containerClass(kind string) ChromeClass {
	switch kind {
	case "row":
		return ClassRow
	case "group":
		return ClassGroup
	default:
		return ClassColumn
	}
}
