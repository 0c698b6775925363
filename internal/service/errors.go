package service

import "errors"

var (
	// ErrCrossProjectDependency rejects edges between items of different projects.
	ErrCrossProjectDependency = errors.New("dependency endpoints belong to different projects")
	// ErrParentOutsideProject rejects a parent taken from another project.
	ErrParentOutsideProject = errors.New("parent belongs to a different project")
	// ErrParentCycle rejects moving an item underneath its own subtree.
	ErrParentCycle = errors.New("item cannot be moved under its own descendant")
	// ErrInvalidProject wraps project field validation failures.
	ErrInvalidProject = errors.New("invalid project")
)
