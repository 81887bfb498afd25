package afsc

import (
	"strings"

	"github.com/CyberAustin/AFSCbot/internal/dataset"
	"github.com/CyberAustin/AFSCbot/internal/domain"
)

// ReplyHeader is the caret-escaped banner prepended to every reply so the
// boilerplate renders as Reddit small text.
const ReplyHeader = "^^You've ^^mentioned ^^an ^^AFSC, ^^here's ^^the" +
	" ^^associated ^^job ^^title:\n\n"

// Builder turns one comment body into a reply body. It is stateless across
// comments and safe to reuse for the lifetime of the process.
type Builder struct {
	ref   *dataset.Reference
	links map[string]string
}

// NewBuilder wires the reference dataset and an optional base-code → wiki
// URL map; a nil map simply disables link decoration.
func NewBuilder(ref *dataset.Reference, links map[string]string) *Builder {
	return &Builder{ref: ref, links: links}
}

// Annotate extracts and resolves every code candidate in body and returns
// the accumulated reply body, empty when nothing resolved. Enlisted
// candidates are processed before officer candidates, each in scan order,
// and a whole-match string is annotated at most once per comment.
func (b *Builder) Annotate(body string) string {
	seen := map[string]struct{}{}
	var reply strings.Builder

	for _, cat := range []domain.Category{domain.CategoryEnlisted, domain.CategoryOfficer} {
		for _, candidate := range Extract(body, cat) {
			if _, dup := seen[candidate.Whole]; dup {
				continue
			}

			resolved, ok := Resolve(candidate, b.ref.Category(cat))
			if !ok {
				continue
			}
			seen[candidate.Whole] = struct{}{}

			reply.WriteString(resolved.Whole)
			reply.WriteString(" = ")
			reply.WriteString(resolved.Title)
			if url, ok := b.links[Normalize(candidate)]; ok {
				reply.WriteString(" [wiki](")
				reply.WriteString(url)
				reply.WriteString(")")
			}
			reply.WriteString("\n\n")
		}
	}

	return reply.String()
}
