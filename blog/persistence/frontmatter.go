package persistence

import (
	"bytes"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	"github.com/dhkim-dev/inkpress/blog/domain"
)

// postMeta is the metadata block at the top of every post file. The first
// group of fields is the current shape; Draft, Date and Tags belong to the
// legacy shape and are accepted on read only. Writes always produce the
// current shape, omitting keys whose value is absent.
type postMeta struct {
	ID          string     `yaml:"id,omitempty"`
	Slug        string     `yaml:"slug,omitempty"`
	Title       string     `yaml:"title,omitempty"`
	Status      string     `yaml:"status,omitempty"`
	CreatedAt   *time.Time `yaml:"created_at,omitempty"`
	UpdatedAt   *time.Time `yaml:"updated_at,omitempty"`
	PublishedAt *time.Time `yaml:"published_at,omitempty"`
	Description string     `yaml:"description,omitempty"`

	// Legacy fields.
	Draft *bool      `yaml:"draft,omitempty"`
	Date  *time.Time `yaml:"date,omitempty"`
	Tags  []string   `yaml:"tags,omitempty"`
}

// parsePostFile splits the metadata block from the body. A file with no
// metadata block at all yields empty metadata and the full content as body,
// which is how legacy files without frontmatter stay readable. A present but
// unparseable block returns an error for the caller to wrap.
func parsePostFile(data []byte) (postMeta, string, error) {
	var meta postMeta
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return postMeta{}, "", err
	}
	return meta, strings.TrimPrefix(string(body), "\n"), nil
}

// serializePostFile is the inverse of parsePostFile for metadata written by
// this system: parse(serialize(m, b)) round-trips.
func serializePostFile(meta postMeta, body string) ([]byte, error) {
	// Legacy fields are read-only; never write them back.
	meta.Draft = nil
	meta.Date = nil
	meta.Tags = nil

	out, err := yaml.Marshal(meta)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(out)
	buf.WriteString("---\n\n")
	buf.WriteString(body)
	return buf.Bytes(), nil
}

// postFile is a decoded on-disk file, normalized into a domain.Post by
// toDomain so the rest of the store never branches on the legacy shape.
type postFile struct {
	name string
	meta postMeta
	body string
}

func (f *postFile) toDomain() *domain.Post {
	decoded := decodeFilename(f.name)

	post := &domain.Post{
		ID:          decoded.ID,
		Slug:        decoded.Slug,
		Title:       f.meta.Title,
		Description: f.meta.Description,
		Content:     f.body,
		Legacy:      decoded.Legacy,
	}

	if post.ID == "" {
		post.ID = f.meta.ID
	}
	if f.meta.Slug != "" {
		post.Slug = f.meta.Slug
	}
	if post.Title == "" {
		// Pre-identifier files were named after their title.
		post.Title = decoded.Slug
	}

	post.Status = f.status()

	if f.meta.CreatedAt != nil {
		post.CreatedAt = *f.meta.CreatedAt
	} else if f.meta.Date != nil {
		post.CreatedAt = *f.meta.Date
	}
	if f.meta.UpdatedAt != nil {
		post.UpdatedAt = *f.meta.UpdatedAt
	} else {
		post.UpdatedAt = post.CreatedAt
	}
	post.PublishedAt = f.meta.PublishedAt

	return post
}

// status normalizes the two metadata shapes: the current shape stores a
// status string, the legacy shape a draft flag where an absent flag meant
// the post was visible.
func (f *postFile) status() domain.Status {
	if s := domain.Status(f.meta.Status); s.Valid() {
		return s
	}
	if f.meta.Draft != nil && *f.meta.Draft {
		return domain.StatusDraft
	}
	if f.meta.Draft != nil || decodeFilename(f.name).Legacy {
		return domain.StatusPublished
	}
	return domain.StatusDraft
}

func metaFromPost(p *domain.Post) postMeta {
	meta := postMeta{
		ID:          p.ID,
		Slug:        p.Slug,
		Title:       p.Title,
		Status:      string(p.Status),
		Description: p.Description,
		PublishedAt: p.PublishedAt,
	}
	if !p.CreatedAt.IsZero() {
		created := p.CreatedAt
		meta.CreatedAt = &created
	}
	if !p.UpdatedAt.IsZero() {
		updated := p.UpdatedAt
		meta.UpdatedAt = &updated
	}
	return meta
}
