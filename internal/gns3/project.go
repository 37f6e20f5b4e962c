package gns3

import "fmt"

type ErrorKind string

const (
	ErrMissingSelector   ErrorKind = "missing_selector"
	ErrNotFound          ErrorKind = "not_found"
	ErrAmbiguousSelector ErrorKind = "ambiguous_selector"
)

// ResolveError reports why a project selector could not be turned into
// exactly one project id.
type ResolveError struct {
	Kind     ErrorKind
	Selector string
	Matches  int
}

func (e *ResolveError) Error() string {
	switch e.Kind {
	case ErrMissingSelector:
		return "either project_id or project_name must be set"
	case ErrNotFound:
		return fmt.Sprintf("no project matches %q", e.Selector)
	case ErrAmbiguousSelector:
		return fmt.Sprintf("%d projects match name %q, disambiguate with project_id", e.Matches, e.Selector)
	default:
		return fmt.Sprintf("project resolution failed for %q", e.Selector)
	}
}

// ResolveProject picks exactly one project id from the list. An id
// selector takes precedence over a name; a name shared by several
// projects is refused rather than guessed at.
func ResolveProject(projects []Project, projectID, projectName string) (string, error) {
	if projectID != "" {
		for _, p := range projects {
			if p.ID == projectID {
				return projectID, nil
			}
		}
		return "", &ResolveError{Kind: ErrNotFound, Selector: projectID}
	}

	if projectName != "" {
		var matches []Project
		for _, p := range projects {
			if p.Name == projectName {
				matches = append(matches, p)
			}
		}
		switch len(matches) {
		case 0:
			return "", &ResolveError{Kind: ErrNotFound, Selector: projectName}
		case 1:
			return matches[0].ID, nil
		default:
			return "", &ResolveError{Kind: ErrAmbiguousSelector, Selector: projectName, Matches: len(matches)}
		}
	}

	return "", &ResolveError{Kind: ErrMissingSelector}
}
