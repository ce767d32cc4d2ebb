package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
)

// maxThreadArticles bounds how far down the thread own replies are searched.
const maxThreadArticles = 30

// Reconciler infers already-applied actions from the rendered post page. Its answer is a hint to
// avoid duplicate clicks; the ledger stays authoritative.
type Reconciler struct{}

func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// Inspect reads the page the driver currently shows, which must be the post's status page.
func (r *Reconciler) Inspect(ctx context.Context, driver ports.Driver, postID domain.PostID, ownHandle string) (domain.UIStateSnapshot, error) {
	content, err := driver.RenderedContent(ctx)
	if err != nil {
		return domain.UIStateSnapshot{}, fmt.Errorf("read post page: %w", err)
	}

	return r.InspectContent(content, postID, ownHandle)
}

func (r *Reconciler) InspectContent(content string, postID domain.PostID, ownHandle string) (domain.UIStateSnapshot, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return domain.UIStateSnapshot{}, err
	}

	articles := doc.Find(articleSelector)
	scope := doc.Selection
	for _, article := range articles.EachIter() {
		if _, id, ok := articleStatus(article); ok && id == string(postID) {
			scope = article
			break
		}
	}

	return domain.UIStateSnapshot{
		Favorited:  hasControl(scope, "unlike", "いいねを取り消", "undo like", "unlike"),
		Reshared:   hasControl(scope, "unretweet", "リポストを取り消", "undo repost", "unretweet"),
		Bookmarked: hasControl(scope, "removeBookmark", "ブックマークを削除", "remove bookmark"),
		Replied:    hasOwnReply(articles, postID, ownHandle, maxThreadArticles),
	}, nil
}

func hasControl(scope *goquery.Selection, testID string, labels ...string) bool {
	return scope.Find(byTestID(testID)).Length() > 0 || ariaLabelContains(scope, labels...)
}

func hasOwnReply(articles *goquery.Selection, postID domain.PostID, ownHandle string, limit int) bool {
	own := domain.NormalizeHandle(ownHandle)
	if own == "" {
		return false
	}

	for i, article := range articles.EachIter() {
		if i >= limit {
			break
		}
		if _, id, ok := articleStatus(article); ok && id == string(postID) {
			continue
		}
		if strings.EqualFold(articleAuthor(article), own) {
			return true
		}
	}

	return false
}
