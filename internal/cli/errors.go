package cli

import "fmt"

type notFoundError struct {
	kind string
	id   string
}

func (e notFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.kind, e.id)
}

func errNotFound(kind, id string) error {
	return notFoundError{kind: kind, id: id}
}

type ambiguousError struct {
	kind   string
	prefix string
	n      int
}

func (e ambiguousError) Error() string {
	return fmt.Sprintf("ambiguous %s id prefix %q (%d matches)", e.kind, e.prefix, e.n)
}

func errAmbiguous(kind, prefix string, n int) error {
	return ambiguousError{kind: kind, prefix: prefix, n: n}
}
