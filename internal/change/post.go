package change

import (
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/opencountrieslist/advisory-cli/internal/model"
)

// maxPostLen matches the length limit of the social platforms the posts are
// written for.
const maxPostLen = 280

const postSuffix = " See the current travel status of every country at https://opencountrieslist.com #travel #covid19"

// RenderPost turns a change event's narrative into a ready-to-publish post.
// Events with no narrative or whose post would overflow the length limit
// produce no post.
func RenderPost(event *model.ChangeEvent) (string, bool) {
	if event == nil || event.Narrative == "" {
		return "", false
	}
	post := event.Narrative + postSuffix
	if n := utf8.RuneCountInString(post); n > maxPostLen {
		zap.L().Warn("dropping oversized post",
			zap.String("country", event.Country),
			zap.Int("length", n))
		return "", false
	}
	return post, true
}
