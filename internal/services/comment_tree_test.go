package services

import (
	"testing"

	"devboard/internal/models"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestBuildCommentTreeBasic(t *testing.T) {
	comments := []models.Comment{
		{ID: 1, Content: "root"},
		{ID: 2, ParentID: uintPtr(1), Content: "reply"},
		{ID: 3, ParentID: uintPtr(99), Content: "orphan"},
	}

	roots := BuildCommentTree(comments)

	if len(roots) != 2 {
		t.Fatalf("Expected 2 roots, got %d", len(roots))
	}
	if roots[0].ID != 1 || roots[1].ID != 3 {
		t.Errorf("Expected roots [1, 3], got [%d, %d]", roots[0].ID, roots[1].ID)
	}
	if len(roots[0].Replies) != 1 || roots[0].Replies[0].ID != 2 {
		t.Errorf("Expected node 1 to have reply [2], got %v", roots[0].Replies)
	}
	if len(roots[1].Replies) != 0 {
		t.Errorf("Expected orphan root to have no replies, got %d", len(roots[1].Replies))
	}
}

func TestBuildCommentTreePreservesOrder(t *testing.T) {
	// Newest-first input order must survive among roots and among siblings
	comments := []models.Comment{
		{ID: 5},
		{ID: 4},
		{ID: 3, ParentID: uintPtr(1)},
		{ID: 2, ParentID: uintPtr(1)},
		{ID: 1},
	}

	roots := BuildCommentTree(comments)

	want := []uint{5, 4, 1}
	if len(roots) != len(want) {
		t.Fatalf("Expected %d roots, got %d", len(want), len(roots))
	}
	for i, id := range want {
		if roots[i].ID != id {
			t.Errorf("Root %d: expected id %d, got %d", i, id, roots[i].ID)
		}
	}

	replies := roots[2].Replies
	if len(replies) != 2 || replies[0].ID != 3 || replies[1].ID != 2 {
		t.Errorf("Expected replies [3, 2] under node 1, got %v", replies)
	}
}

func TestBuildCommentTreeNested(t *testing.T) {
	comments := []models.Comment{
		{ID: 3, ParentID: uintPtr(2)},
		{ID: 2, ParentID: uintPtr(1)},
		{ID: 1},
	}

	roots := BuildCommentTree(comments)

	if len(roots) != 1 {
		t.Fatalf("Expected 1 root, got %d", len(roots))
	}
	if len(roots[0].Replies) != 1 || roots[0].Replies[0].ID != 2 {
		t.Fatalf("Expected node 2 under node 1")
	}
	if len(roots[0].Replies[0].Replies) != 1 || roots[0].Replies[0].Replies[0].ID != 3 {
		t.Errorf("Expected node 3 under node 2")
	}
}

func TestBuildCommentTreeEmpty(t *testing.T) {
	roots := BuildCommentTree(nil)
	if len(roots) != 0 {
		t.Errorf("Expected no roots for empty input, got %d", len(roots))
	}
}

func TestBuildCommentTreeSelfParent(t *testing.T) {
	// A comment referencing itself must not loop; it becomes a root
	comments := []models.Comment{
		{ID: 1, ParentID: uintPtr(1)},
	}

	roots := BuildCommentTree(comments)

	if len(roots) != 1 || roots[0].ID != 1 {
		t.Fatalf("Expected self-parented comment demoted to root")
	}
	if len(roots[0].Replies) != 0 {
		t.Errorf("Expected no replies on self-parented comment")
	}
}

func TestRenderCommentTree(t *testing.T) {
	comments := []models.Comment{
		{ID: 2, ParentID: uintPtr(1), Content: "b"},
		{ID: 1, Content: "a"},
	}

	roots := BuildCommentTree(comments)
	RenderCommentTree(roots, func(s string) string { return "<p>" + s + "</p>" })

	var reply *CommentNode
	for _, r := range roots {
		if r.ID == 1 && len(r.Replies) == 1 {
			reply = r.Replies[0]
		}
	}
	if reply == nil {
		t.Fatalf("Expected node 2 under node 1")
	}
	if reply.ContentHTML != "<p>b</p>" {
		t.Errorf("Expected rendered reply content, got %q", reply.ContentHTML)
	}
}
