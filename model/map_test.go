//-----------------------------------------------------------------------------
// Copyright (c) 2024-present The mpkit authors
//
// This file is part of mpkit/transform.
//
// mpkit/transform is licensed under the latest version of the EUPL (European
// Union Public License). Please see file LICENSE.txt for your rights and
// obligations under this license.
//-----------------------------------------------------------------------------

package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpkit/transform/model"
)

func sectionModel(id model.ID, priority int, path ...model.ID) *model.Section {
	return &model.Section{
		Base:     model.Base{ID: id, ObjectType: model.TypeSection},
		Priority: priority,
		Path:     path,
	}
}

func TestBuildAdjacency(t *testing.T) {
	m := model.Map{}
	m.Put(sectionModel("MPSection:a", 2, "MPSection:a"))
	m.Put(sectionModel("MPSection:b", 1, "MPSection:b"))
	m.Put(sectionModel("MPSection:a1", 2, "MPSection:a", "MPSection:a1"))
	m.Put(sectionModel("MPSection:a2", 1, "MPSection:a", "MPSection:a2"))

	adj := m.BuildAdjacency()
	roots := adj.Roots()
	require.Len(t, roots, 2)
	assert.Equal(t, model.ID("MPSection:b"), roots[0].ID)
	assert.Equal(t, model.ID("MPSection:a"), roots[1].ID)

	children := adj.Children("MPSection:a")
	require.Len(t, children, 2)
	assert.Equal(t, model.ID("MPSection:a2"), children[0].ID)
	assert.Equal(t, model.ID("MPSection:a1"), children[1].ID)
	assert.Empty(t, adj.Children("MPSection:b"))
}

func TestSectionParentAndDepth(t *testing.T) {
	root := sectionModel("MPSection:a", 1, "MPSection:a")
	child := sectionModel("MPSection:a1", 1, "MPSection:a", "MPSection:a1")
	assert.Equal(t, model.ID(""), root.ParentID())
	assert.Equal(t, model.ID("MPSection:a"), child.ParentID())
	assert.Equal(t, 1, root.Depth())
	assert.Equal(t, 2, child.Depth())
}

func TestLatestSubmission(t *testing.T) {
	m := model.Map{}
	m.Put(&model.Submission{
		Base:         model.Base{ID: "MPSubmission:old", ObjectType: model.TypeSubmission, CreatedAt: 100},
		ManuscriptID: "MPManuscript:ms",
		JournalTitle: "Old",
	})
	m.Put(&model.Submission{
		Base:         model.Base{ID: "MPSubmission:new", ObjectType: model.TypeSubmission, CreatedAt: 200},
		ManuscriptID: "MPManuscript:ms",
		JournalTitle: "New",
	})
	m.Put(&model.Submission{
		Base:         model.Base{ID: "MPSubmission:other", ObjectType: model.TypeSubmission, CreatedAt: 300},
		ManuscriptID: "MPManuscript:other",
		JournalTitle: "Other",
	})

	sub, ok := m.LatestSubmission("MPManuscript:ms")
	require.True(t, ok)
	assert.Equal(t, "New", sub.JournalTitle)

	_, ok = model.Map{}.LatestSubmission("MPManuscript:ms")
	assert.False(t, ok)
}

func TestNewIDCarriesObjectType(t *testing.T) {
	id := model.NewID(model.TypeFigure)
	assert.Equal(t, model.TypeFigure, id.ObjectType())
	assert.NotEqual(t, id, model.NewID(model.TypeFigure))
	assert.Equal(t, model.ObjectType(""), model.ID("malformed").ObjectType())
}
