package http

import (
	"github.com/soliva-social/soliva/internal/core/domain"
)

// Les timestamps sortent en nanosecondes entières depuis l'epoch : les
// clients divisent par 1e6 pour afficher des millisecondes.

type registerRequest struct {
	Name         string `json:"name"`
	Bio          string `json:"bio"`
	ProfileImage string `json:"profile_image"`
	CoverImage   string `json:"cover_image"`
}

type createPostRequest struct {
	Content string `json:"content"`
	Image   string `json:"image"`
	Video   string `json:"video"`
}

type commentRequest struct {
	Content string `json:"content"`
}

type messageRequest struct {
	Content string `json:"content"`
}

type markSeenRequest struct {
	UpTo int64 `json:"up_to"`
}

type profileResponse struct {
	Key          string   `json:"key"`
	Name         string   `json:"name"`
	Bio          string   `json:"bio"`
	ProfileImage string   `json:"profile_image"`
	CoverImage   string   `json:"cover_image"`
	Followers    []string `json:"followers"`
	Following    []string `json:"following"`
	CreatedAt    int64    `json:"created_at"`
}

type commentResponse struct {
	ID        int64  `json:"id"`
	Author    string `json:"author"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
}

type postResponse struct {
	ID             int64             `json:"id"`
	Author         string            `json:"author"`
	Content        string            `json:"content"`
	Image          string            `json:"image,omitempty"`
	Video          string            `json:"video,omitempty"`
	CreatedAt      int64             `json:"created_at"`
	Likes          []string          `json:"likes"`
	Comments       []commentResponse `json:"comments"`
	OriginalPostID int64             `json:"original_post_id,omitempty"`
	RepostedBy     string            `json:"reposted_by,omitempty"`
}

type likeResponse struct {
	Outcome string       `json:"outcome"` // "liked" ou "unliked"
	Post    postResponse `json:"post"`
}

type notificationResponse struct {
	ID        int64  `json:"id"`
	Sender    string `json:"sender"`
	Receiver  string `json:"receiver"`
	Kind      string `json:"kind"`
	Message   string `json:"message"`
	CreatedAt int64  `json:"created_at"`
	Read      bool   `json:"read"`
}

type messageResponse struct {
	ID        int64  `json:"id"`
	From      string `json:"from"`
	To        string `json:"to"`
	Content   string `json:"content"`
	CreatedAt int64  `json:"created_at"`
	Seen      bool   `json:"seen"`
}

func toProfileResponse(p *domain.Profile) profileResponse {
	return profileResponse{
		Key:          p.Key,
		Name:         p.Name,
		Bio:          p.Bio,
		ProfileImage: p.ProfileImage,
		CoverImage:   p.CoverImage,
		Followers:    p.Followers,
		Following:    p.Following,
		CreatedAt:    p.CreatedAt.UnixNano(),
	}
}

func toProfileResponses(profiles []*domain.Profile) []profileResponse {
	out := make([]profileResponse, 0, len(profiles))
	for _, p := range profiles {
		out = append(out, toProfileResponse(p))
	}
	return out
}

func toCommentResponse(c *domain.Comment) commentResponse {
	return commentResponse{
		ID:        c.ID,
		Author:    c.Author,
		Content:   c.Content,
		CreatedAt: c.CreatedAt.UnixNano(),
	}
}

func toPostResponse(p *domain.Post) postResponse {
	comments := make([]commentResponse, 0, len(p.Comments))
	for i := range p.Comments {
		comments = append(comments, toCommentResponse(&p.Comments[i]))
	}
	return postResponse{
		ID:             p.ID,
		Author:         p.Author,
		Content:        p.Content,
		Image:          p.Image,
		Video:          p.Video,
		CreatedAt:      p.CreatedAt.UnixNano(),
		Likes:          p.Likes,
		Comments:       comments,
		OriginalPostID: p.OriginalPostID,
		RepostedBy:     p.RepostedBy,
	}
}

func toPostResponses(posts []*domain.Post) []postResponse {
	out := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		out = append(out, toPostResponse(p))
	}
	return out
}

func toNotificationResponse(n *domain.Notification) notificationResponse {
	return notificationResponse{
		ID:        n.ID,
		Sender:    n.Sender,
		Receiver:  n.Receiver,
		Kind:      string(n.Kind),
		Message:   n.Message,
		CreatedAt: n.CreatedAt.UnixNano(),
		Read:      n.Read,
	}
}

func toMessageResponse(m *domain.Message) messageResponse {
	return messageResponse{
		ID:        m.ID,
		From:      m.From,
		To:        m.To,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UnixNano(),
		Seen:      m.Seen,
	}
}
