package gns3

import (
	"errors"
	"testing"
)

var testProjects = []Project{
	{ID: "p1", Name: "Lab"},
	{ID: "p2", Name: "Staging"},
	{ID: "p3", Name: "Staging"},
}

func TestResolveProjectByID(t *testing.T) {
	pid, err := ResolveProject(testProjects, "p2", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pid != "p2" {
		t.Fatalf("expected p2, got %s", pid)
	}
}

func TestResolveProjectByIDNotFound(t *testing.T) {
	_, err := ResolveProject(testProjects, "missing", "")
	assertResolveError(t, err, ErrNotFound)
}

func TestResolveProjectIDTakesPrecedence(t *testing.T) {
	_, err := ResolveProject(testProjects, "missing", "Lab")
	assertResolveError(t, err, ErrNotFound)
}

func TestResolveProjectByName(t *testing.T) {
	pid, err := ResolveProject(testProjects, "", "Lab")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if pid != "p1" {
		t.Fatalf("expected p1, got %s", pid)
	}
}

func TestResolveProjectByNameNotFound(t *testing.T) {
	_, err := ResolveProject(testProjects, "", "Production")
	assertResolveError(t, err, ErrNotFound)
}

func TestResolveProjectByNameAmbiguous(t *testing.T) {
	_, err := ResolveProject(testProjects, "", "Staging")
	assertResolveError(t, err, ErrAmbiguousSelector)

	var resolveErr *ResolveError
	if !errors.As(err, &resolveErr) {
		t.Fatalf("expected ResolveError, got %T", err)
	}
	if resolveErr.Matches != 2 {
		t.Fatalf("expected 2 matches, got %d", resolveErr.Matches)
	}
}

func TestResolveProjectMissingSelector(t *testing.T) {
	_, err := ResolveProject(testProjects, "", "")
	assertResolveError(t, err, ErrMissingSelector)
}

func assertResolveError(t *testing.T, err error, kind ErrorKind) {
	t.Helper()
	var resolveErr *ResolveError
	if !errors.As(err, &resolveErr) {
		t.Fatalf("expected ResolveError, got %v", err)
	}
	if resolveErr.Kind != kind {
		t.Fatalf("expected kind %s, got %s", kind, resolveErr.Kind)
	}
}
