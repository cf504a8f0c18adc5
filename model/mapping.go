//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package model

import (
	"github.com/mpkit/transform/ast"
	"github.com/mpkit/transform/schema"
)

// The two-way lookup between object type tags and node kinds is derived
// from the catalog once at start-up. Object type to kind is not injective:
// all section kinds share MPSection (the category refines the kind during
// decode) and both list kinds share MPListElement (elementType refines).

var (
	kindToObjectType = make(map[ast.Kind]ObjectType)
	objectTypeToKind = make(map[ObjectType]ast.Kind)
)

func init() {
	for _, kind := range schema.Kinds() {
		ns, _ := schema.Spec(kind)
		if ns.ObjectType == "" {
			continue
		}
		ot := ObjectType(ns.ObjectType)
		kindToObjectType[kind] = ot
		if _, ok := objectTypeToKind[ot]; !ok {
			objectTypeToKind[ot] = kind
		}
	}
}

// ObjectTypeForKind returns the object type a node kind persists as.
func ObjectTypeForKind(kind ast.Kind) (ObjectType, bool) {
	ot, ok := kindToObjectType[kind]
	return ot, ok
}

// KindForObjectType returns the default node kind an object type decodes
// to. For MPSection the category may select a more specific section kind,
// for MPListElement the element type selects the list kind.
func KindForObjectType(ot ObjectType) (ast.Kind, bool) {
	kind, ok := objectTypeToKind[ot]
	return kind, ok
}

// Known reports whether the object type is part of the catalog.
func Known(ot ObjectType) bool {
	_, ok := objectTypeToKind[ot]
	switch ot {
	case TypeManuscript, TypeContributor, TypeAffiliation, TypeSubmission,
		TypeCommentAnnotation, TypeHighlight:
		return true
	}
	return ok
}

// IsSectionLike reports whether the model carries path and priority.
func IsSectionLike(mod Model) bool {
	_, ok := mod.(*Section)
	return ok
}

// IsFigure reports whether the model is a figure panel.
func IsFigure(mod Model) bool { return mod.ModelType() == TypeFigure }

// IsElement reports whether the model decodes to a block element of a
// section.
func IsElement(mod Model) bool {
	kind, ok := objectTypeToKind[mod.ModelType()]
	if !ok {
		return false
	}
	return schema.IsInGroup(kind, schema.GroupElement)
}

// IsAuxiliary reports whether the model never appears in the content tree
// (metadata, references, annotations).
func IsAuxiliary(mod Model) bool {
	switch mod.ModelType() {
	case TypeManuscript, TypeContributor, TypeAffiliation, TypeSubmission,
		TypeCitation, TypeBibliographyItem, TypeCommentAnnotation, TypeHighlight:
		return true
	}
	return false
}
