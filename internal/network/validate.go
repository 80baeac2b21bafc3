package network

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// nodeRecord is the validated shape of a node element.
type nodeRecord struct {
	ID       string   `validate:"required,excludesall=|"`
	Species  uint8    `validate:"oneof=1 2"`
	Partners []string `validate:"dive,required"`
	Length   int      `validate:"gte=0"`
}

// edgeRecord is the validated shape of an edge element.
type edgeRecord struct {
	Source string `validate:"required"`
	Target string `validate:"required,nefield=Source"`
}

type documentValidator struct {
	v *validator.Validate
}

func newValidator() *documentValidator {
	return &documentValidator{v: validator.New(validator.WithRequiredStructEnabled())}
}

func (d *documentValidator) node(n *Node) error {
	return describe(d.v.Struct(nodeRecord{
		ID:       n.ID,
		Species:  uint8(n.Species),
		Partners: n.Partners,
		Length:   n.Length,
	}), n.ID)
}

func (d *documentValidator) edge(e Edge) error {
	return describe(d.v.Struct(edgeRecord{
		Source: e.Source,
		Target: e.Target,
	}), e.Source+"-"+e.Target)
}

// describe flattens validator errors into a single readable error.
func describe(err error, subject string) error {
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		parts = append(parts, fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag()))
	}
	if subject == "" {
		subject = "<no id>"
	}
	return fmt.Errorf("%s: %s", subject, strings.Join(parts, ", "))
}
