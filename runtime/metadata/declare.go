package metadata

import (
	"errors"
	"fmt"
	"reflect"
)

// ErrCommitted is returned when a Declaration is committed twice.
var ErrCommitted = errors.New("declaration already committed")

// Declaration collects the decorators of one declaring type and applies them
// in a single Commit.
//
// Decorators are listed in source order, outermost first, and applied the
// way stacked decorators execute: innermost first. Member sites are applied
// in the order they were first declared and the class site is applied last.
// Prepending decorators (annotations) therefore read back in listing order.
//
//	err := metadata.Declare[Account]().
//		Class(annotation.AnnotateClass(Entity{}), tag.TagClass("billing")).
//		Field("Email", annotation.AnnotateField(Required{})).
//		Parameter("Transfer", 0, annotation.AnnotateMethodParameter(Positive{})).
//		Commit()
type Declaration struct {
	handle    reflect.Type
	err       error
	sites     []*declaredSite
	class     []func(target any) error
	committed bool
}

type declaredSite struct {
	site  Site
	steps []func(target any) error
}

// DeclareType starts a declaration for the declaring type of target, which
// may be a reflect.Type or an instance. The decorators themselves decide which
// registry receives the metadata.
func DeclareType(target any) *Declaration {
	handle, err := Resolve(target, Instance)
	return &Declaration{handle: handle, err: err}
}

// Declare starts a declaration for T.
func Declare[T any]() *Declaration {
	return DeclareType(TypeOf[T]())
}

// Type returns the declaring type, or nil if the target was invalid.
func (d *Declaration) Type() reflect.Type {
	return d.handle
}

// Class lists class decorators, outermost first.
func (d *Declaration) Class(decorators ...ClassDecorator) *Declaration {
	for _, dec := range decorators {
		if dec == nil {
			continue
		}
		d.class = append(d.class, dec)
	}
	return d
}

// Field lists decorators of a field, outermost first.
func (d *Declaration) Field(member Member, decorators ...FieldDecorator) *Declaration {
	ds := d.siteFor(FieldSite{Member: member})
	for _, dec := range decorators {
		if dec == nil {
			continue
		}
		dec := dec
		ds.steps = append(ds.steps, func(target any) error { return dec(target, member) })
	}
	return d
}

// Method lists decorators of a method, outermost first.
func (d *Declaration) Method(member Member, decorators ...FieldDecorator) *Declaration {
	return d.Field(member, decorators...)
}

// Parameter lists decorators of the parameter at index of member, outermost
// first. Use ConstructorMember for constructor parameters.
func (d *Declaration) Parameter(member Member, index int, decorators ...ParameterDecorator) *Declaration {
	ds := d.siteFor(ParameterSite{Member: member, Index: index})
	for _, dec := range decorators {
		if dec == nil {
			continue
		}
		dec := dec
		ds.steps = append(ds.steps, func(target any) error { return dec(target, member, index) })
	}
	return d
}

// At lists site-agnostic decorators (such as annotation.Annotate) for site.
func (d *Declaration) At(site Site, decorators ...Decorator) *Declaration {
	for _, dec := range decorators {
		if dec == nil {
			continue
		}
		dec := dec
		step := func(target any) error { return dec(target, site) }
		switch site.(type) {
		case nil, ClassSite:
			d.class = append(d.class, step)
		default:
			ds := d.siteFor(site)
			ds.steps = append(ds.steps, step)
		}
	}
	return d
}

func (d *Declaration) siteFor(site Site) *declaredSite {
	for _, ds := range d.sites {
		if ds.site == site {
			return ds
		}
	}
	ds := &declaredSite{site: site}
	d.sites = append(d.sites, ds)
	return ds
}

// Commit applies every listed decorator and stops at the first error.
func (d *Declaration) Commit() error {
	if d.committed {
		return ErrCommitted
	}
	d.committed = true
	if d.err != nil {
		return d.err
	}

	for _, ds := range d.sites {
		if err := applyReversed(d.handle, ds.steps); err != nil {
			return fmt.Errorf("%v %s: %w", d.handle, ds.site, err)
		}
	}
	if err := applyReversed(d.handle, d.class); err != nil {
		return fmt.Errorf("%v %s: %w", d.handle, ClassSite{}, err)
	}
	return nil
}

func applyReversed(target any, steps []func(target any) error) error {
	for i := len(steps) - 1; i >= 0; i-- {
		if err := steps[i](target); err != nil {
			return err
		}
	}
	return nil
}
