package domain

import (
	"strings"
	"time"
)

// Post porte son arène complète : likers et commentaires vivent dans
// l'agrégat, mutés uniquement via le repository (une opération = une
// transaction). Un wrapper de repost n'a ni contenu ni média propres,
// il pointe vers OriginalPostID (référence tolérée pendante, résolue
// à la lecture).
type Post struct {
	ID        int64
	Author    string
	Content   string
	Image     string // référence opaque, vide = absent
	Video     string
	CreatedAt time.Time
	Likes     []string
	Comments  []Comment

	// Marqueurs de repost (0 / vide sur un post original)
	OriginalPostID int64
	RepostedBy     string
}

// Comment est enfant d'exactement un Post ; son id est monotone
// dans la portée du post parent.
type Comment struct {
	ID        int64
	Author    string
	Content   string
	CreatedAt time.Time
}

// LikeOutcome lève l'ambiguïté du toggle : l'appelant sait quelle
// transition a eu lieu.
type LikeOutcome string

const (
	Liked   LikeOutcome = "liked"
	Unliked LikeOutcome = "unliked"
)

// NewPost valide la règle "contenu ou média" et crée le post (sans id,
// le repository est l'autorité de la séquence).
func NewPost(author, content, image, video string) (*Post, error) {
	if strings.TrimSpace(content) == "" && image == "" && video == "" {
		return nil, ErrEmptyPost
	}
	return &Post{
		Author:    author,
		Content:   content,
		Image:     image,
		Video:     video,
		CreatedAt: time.Now().UTC(),
		Likes:     []string{},
		Comments:  []Comment{},
	}, nil
}

// NewRepost crée le wrapper : pas de contenu propre, juste la référence.
func NewRepost(author string, originalID int64) *Post {
	return &Post{
		Author:         author,
		CreatedAt:      time.Now().UTC(),
		Likes:          []string{},
		Comments:       []Comment{},
		OriginalPostID: originalID,
		RepostedBy:     author,
	}
}

func (p *Post) IsRepost() bool { return p.OriginalPostID != 0 }

// LikedBy : appartenance au set des likers.
func (p *Post) LikedBy(userKey string) bool {
	for _, k := range p.Likes {
		if k == userKey {
			return true
		}
	}
	return false
}

// Clone copie l'agrégat en profondeur. Les repositories mémoire rendent
// toujours des clones, jamais l'instance stockée.
func (p *Post) Clone() *Post {
	cp := *p
	cp.Likes = append([]string(nil), p.Likes...)
	cp.Comments = append([]Comment(nil), p.Comments...)
	return &cp
}
