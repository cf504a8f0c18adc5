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

// ObjectType is the closed-enumeration tag identifying a model's kind.
type ObjectType string

// The object type enumeration. The string values are part of the persisted
// format.
const (
	TypeManuscript          ObjectType = "MPManuscript"
	TypeSection             ObjectType = "MPSection"
	TypeParagraphElement    ObjectType = "MPParagraphElement"
	TypeListElement         ObjectType = "MPListElement"
	TypeQuoteElement        ObjectType = "MPQuoteElement"
	TypeFigureElement       ObjectType = "MPFigureElement"
	TypeFigure              ObjectType = "MPFigure"
	TypeTableElement        ObjectType = "MPTableElement"
	TypeTable               ObjectType = "MPTable"
	TypeEquationElement     ObjectType = "MPEquationElement"
	TypeEquation            ObjectType = "MPEquation"
	TypeListingElement      ObjectType = "MPListingElement"
	TypeListing             ObjectType = "MPListing"
	TypeKeywordsElement     ObjectType = "MPKeywordsElement"
	TypeKeyword             ObjectType = "MPKeyword"
	TypeBibliographyElement ObjectType = "MPBibliographyElement"
	TypeBibliographyItem    ObjectType = "MPBibliographyItem"
	TypeTOCElement          ObjectType = "MPTOCElement"
	TypeFootnotesElement    ObjectType = "MPFootnotesElement"
	TypeFootnote            ObjectType = "MPFootnote"
	TypeCitation            ObjectType = "MPCitation"
	TypeInlineMathFragment  ObjectType = "MPInlineMathFragment"
	TypeContributor         ObjectType = "MPContributor"
	TypeAffiliation         ObjectType = "MPAffiliation"
	TypeSubmission          ObjectType = "MPSubmission"
	TypeCommentAnnotation   ObjectType = "MPCommentAnnotation"
	TypeHighlight           ObjectType = "MPHighlight"
)

// SectionCategoryPrefix prefixes every section category token.
const SectionCategoryPrefix = "MPSectionCategory:"
