package services

import (
	"devboard/internal/models"
)

// CommentNode is one comment plus its ordered replies.
type CommentNode struct {
	models.Comment
	ContentHTML string         `json:"content_html"`
	Replies     []*CommentNode `json:"replies"`
}

// BuildCommentTree assembles a flat comment list into a forest of root
// comments. Input is expected newest-first; relative order among roots and
// among siblings is preserved. A comment whose parent id does not resolve
// within the given set (deleted, or belongs to another post) is demoted to a
// root rather than dropped.
//
// Nodes live in a single arena indexed by comment id; each node is linked
// exactly once, so a malformed parent chain can never loop the builder.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	arena := make([]CommentNode, len(comments))
	index := make(map[uint]int, len(comments))
	for i, c := range comments {
		arena[i] = CommentNode{Comment: c, Replies: []*CommentNode{}}
		index[c.ID] = i
	}

	roots := make([]*CommentNode, 0, len(comments))
	for i := range arena {
		node := &arena[i]
		if node.ParentID != nil {
			if j, ok := index[*node.ParentID]; ok && j != i {
				arena[j].Replies = append(arena[j].Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}

// RenderCommentTree fills ContentHTML on every node of a built forest.
// Iterative with an explicit stack, so nesting depth cannot blow the call
// stack.
func RenderCommentTree(roots []*CommentNode, render func(string) string) {
	stack := make([]*CommentNode, len(roots))
	copy(stack, roots)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node.ContentHTML = render(node.Content)
		stack = append(stack, node.Replies...)
	}
}
