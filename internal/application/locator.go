package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/bnema/social-actions-cli/internal/domain"
	"github.com/bnema/social-actions-cli/internal/ports"
)

const DefaultBaseURL = "https://x.com"

var accountMissingPhrases = []string{
	"このアカウントは存在しません",
	"this account doesn't exist",
	"this account doesn’t exist",
	"account does not exist",
	"帳戶不存在",
}

var (
	pinnedMarkers = []string{"pinned", "ピン留め", "固定されたツイート"}
	repostMarkers = []string{"reposted", "repost", "リポスト"}
)

// PostLocator finds the newest regular post on a target's profile page.
type PostLocator struct {
	baseURL     string
	pageTimeout time.Duration
}

func NewPostLocator(baseURL string, pageTimeout time.Duration) *PostLocator {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if pageTimeout <= 0 {
		pageTimeout = 30 * time.Second
	}
	return &PostLocator{baseURL: strings.TrimSuffix(baseURL, "/"), pageTimeout: pageTimeout}
}

// ProfileURL lower-cases the handle; handles are case-insensitive on the platform.
func (l *PostLocator) ProfileURL(handle string) string {
	return l.baseURL + "/" + strings.ToLower(domain.NormalizeHandle(handle))
}

func (l *PostLocator) PostURL(id domain.PostID) string {
	return l.baseURL + "/any/status/" + string(id)
}

// Latest returns the first post on the profile that is neither pinned nor a repost.
// ErrTargetNotFound means the profile does not exist; ErrPostNotFound means nothing usable was shown.
func (l *PostLocator) Latest(ctx context.Context, driver ports.Driver, handle string) (domain.Post, error) {
	handle = strings.ToLower(domain.NormalizeHandle(handle))
	if err := driver.Navigate(ctx, l.ProfileURL(handle)); err != nil {
		return domain.Post{}, fmt.Errorf("open profile @%s: %w", handle, err)
	}

	waitErr := driver.WaitFor(ctx, articleSelector, l.pageTimeout)
	if waitErr != nil && errors.Is(waitErr, domain.ErrSessionDead) {
		return domain.Post{}, fmt.Errorf("wait for @%s posts: %w", handle, waitErr)
	}

	content, err := driver.RenderedContent(ctx)
	if err != nil {
		return domain.Post{}, fmt.Errorf("read profile @%s: %w", handle, err)
	}
	if containsAnyFold(content, accountMissingPhrases...) {
		return domain.Post{}, fmt.Errorf("profile @%s: %w", handle, domain.ErrTargetNotFound)
	}
	if waitErr != nil {
		return domain.Post{}, fmt.Errorf("wait for @%s posts: %w: %w", handle, domain.ErrPostNotFound, waitErr)
	}

	return l.latestFromContent(content, handle)
}

func (l *PostLocator) latestFromContent(content string, handle string) (domain.Post, error) {
	doc, err := parseDocument(content)
	if err != nil {
		return domain.Post{}, err
	}

	for _, article := range doc.Find(articleSelector).EachIter() {
		if isPinned(article) || isRepost(article) {
			continue
		}

		author, id, ok := articleStatus(article)
		if !ok || !strings.EqualFold(author, handle) {
			continue
		}

		post := domain.Post{ID: domain.PostID(id), Author: author}
		if body := article.Find(byTestID("tweetText")).First(); body.Length() > 0 {
			post.Text = textContent(body)
		}
		return post, nil
	}

	return domain.Post{}, fmt.Errorf("profile @%s has no regular post: %w", handle, domain.ErrPostNotFound)
}

func socialContext(article *goquery.Selection) string {
	return textContent(article.Find(byTestID("socialContext")).First())
}

func isPinned(article *goquery.Selection) bool {
	return containsAnyFold(socialContext(article), pinnedMarkers...)
}

func isRepost(article *goquery.Selection) bool {
	return containsAnyFold(socialContext(article), repostMarkers...)
}
