package services

import (
	"time"

	"storyhive/internal/models"
)

// rootKey groups comments without a parent. Primary keys start at 1, so 0
// never collides with a real comment id.
const rootKey uint = 0

// maxTreeDepth bounds the recursive assembly against pathological reply
// chains. The stored depth column is display metadata and is not trusted.
const maxTreeDepth = 100

// CommentNode is one node of the nested comment structure returned to
// clients. Children are ordered by creation time ascending.
type CommentNode struct {
	ID        uint             `json:"id"`
	Body      string           `json:"body"`
	Depth     int              `json:"depth"`
	User      models.UserBrief `json:"user"`
	CreatedAt time.Time        `json:"created_at"`
	Children  []*CommentNode   `json:"children"`
}

// BuildCommentTree converts the flat, created_at-ascending comment list of
// a single story into a forest. Comments whose parent id does not resolve
// (parent deleted) are excluded along with their subtrees; they stay
// addressable by direct id lookup but vanish from tree output.
func BuildCommentTree(comments []models.Comment) []*CommentNode {
	grouped := make(map[uint][]*models.Comment, len(comments))
	for i := range comments {
		com := &comments[i]
		key := rootKey
		if com.ParentID != nil {
			key = *com.ParentID
		}
		grouped[key] = append(grouped[key], com)
	}

	var build func(parent uint, depth int) []*CommentNode
	build = func(parent uint, depth int) []*CommentNode {
		nodes := make([]*CommentNode, 0, len(grouped[parent]))
		if depth > maxTreeDepth {
			return nodes
		}
		for _, com := range grouped[parent] {
			nodes = append(nodes, &CommentNode{
				ID:        com.ID,
				Body:      com.Body,
				Depth:     com.Depth,
				User:      com.User.Brief(),
				CreatedAt: com.CreatedAt,
				Children:  build(com.ID, depth+1),
			})
		}
		return nodes
	}

	return build(rootKey, 0)
}

// CountTreeNodes returns the number of comments reachable from the roots.
func CountTreeNodes(nodes []*CommentNode) int {
	total := 0
	for _, n := range nodes {
		total += 1 + CountTreeNodes(n.Children)
	}
	return total
}
