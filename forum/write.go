package forum

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/avolkau/lurk/scrape"
)

// PostDelay is the minimum pause between fetching a composer form and
// submitting it. Posting faster trips the server's automated-bot heuristic
// and gets the message rejected, so this must not be shortened.
const PostDelay = 2 * time.Second

const (
	ActionFavorite    = "favorite"
	ActionUnfavorite  = "unfavorite"
	ActionSubscribe   = "subscribe"
	ActionUnsubscribe = "unsubscribe"
)

// PostMessage replies to a topic and returns the link to the new message,
// taken from the confirmation page the forum redirects through.
func (c *Client) PostMessage(ctx context.Context, topicID int, message string) (*url.URL, error) {
	return c.submitPost(ctx, "tid", topicID, map[string]string{
		"req_message": message,
	})
}

// PostTopic creates a new topic in a forum and returns the link to it.
func (c *Client) PostTopic(ctx context.Context, forumID int, subject, message string) (*url.URL, error) {
	return c.submitPost(ctx, "fid", forumID, map[string]string{
		"req_subject": subject,
		"req_message": message,
	})
}

// submitPost runs the two-phase form replay shared by replies and new
// topics: harvest the composer's hidden inputs, wait out the anti-bot
// delay, submit the merged form to the same endpoint.
func (c *Client) submitPost(ctx context.Context, idParam string, id int, visible map[string]string) (*url.URL, error) {
	postURL := c.Resolve("post.php?" + idParam + "=" + strconv.Itoa(id))

	doc, _, err := c.getDocument(ctx, "load composer page", postURL)
	if err != nil {
		return nil, err
	}

	fields := scrape.HarvestHiddenInputs(doc, "form#post")
	if len(fields) == 0 {
		return nil, &scrape.ParseError{Page: "composer", Missing: "form#post hidden inputs"}
	}
	for name, value := range visible {
		fields[name] = value
	}

	c.sleep(PostDelay)

	confirmation, _, err := c.postForm(ctx, "submit post", postURL, fields)
	if err != nil {
		return nil, err
	}
	return scrape.ParseResultLink(confirmation, c.BaseURL())
}

// ManageFavorites toggles favorite or subscription state of a topic for
// the logged-in user. The four actions share one endpoint and are
// idempotent from the caller's perspective: favoriting an already favorited
// topic is a no-op success. Calling this while logged out is undefined.
func (c *Client) ManageFavorites(ctx context.Context, topicID int, action string) error {
	switch action {
	case ActionFavorite, ActionUnfavorite, ActionSubscribe, ActionUnsubscribe:
	default:
		return fmt.Errorf("unknown toggle action %q", action)
	}

	toggleURL := c.Resolve("misc.php?action=" + action + "&tid=" + strconv.Itoa(topicID))
	res, err := c.http.R().SetContext(ctx).Get(toggleURL.String())
	if err != nil {
		return &TransportError{Op: "toggle " + action, Err: err}
	}
	if !res.IsSuccess() {
		return &TransportError{Op: "toggle " + action, Status: res.Status()}
	}
	return nil
}

const imgurUploadURL = "https://api.imgur.com/3/image"
const imgurClientAuth = "Client-ID 860dc14aa7caf25"

// UploadImage pushes image bytes to the imgur API and returns the direct
// link, ready to be pasted into a message. This is the one request that
// leaves the forum origin.
func (c *Client) UploadImage(ctx context.Context, image []byte) (string, error) {
	res, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", imgurClientAuth).
		SetMultipartFormData(map[string]string{"type": "file"}).
		SetFileReader("image", "lurk-"+uuid.NewString(), bytes.NewReader(image)).
		Post(c.uploadURL)
	if err != nil {
		return "", &TransportError{Op: "upload image", Err: err}
	}
	if !res.IsSuccess() {
		return "", &TransportError{Op: "upload image", Status: res.Status()}
	}

	var reply struct {
		Data struct {
			Link string `json:"link"`
		} `json:"data"`
	}
	if err := json.Unmarshal(res.Body(), &reply); err != nil {
		return "", err
	}
	if reply.Data.Link == "" {
		return "", fmt.Errorf("upload image: no link in imgur reply")
	}
	return reply.Data.Link, nil
}
