package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"os"
	"testing"
	"time"
)

// End-to-end flow against a running server. Skipped unless
// INTEGRATION_BASE_URL is set, e.g.
//
//	INTEGRATION_BASE_URL=http://localhost:4320 go test ./tests/integration/
func baseURL(t *testing.T) string {
	t.Helper()
	url := os.Getenv("INTEGRATION_BASE_URL")
	if url == "" {
		t.Skip("INTEGRATION_BASE_URL not set; skipping integration tests")
	}
	return url
}

func newClient(t *testing.T) *http.Client {
	t.Helper()
	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &http.Client{Jar: jar, Timeout: 10 * time.Second}
}

func postJSON(t *testing.T, client *http.Client, url string, payload any) *http.Response {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	resp, err := client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, out any) {
	t.Helper()
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}

func TestHealthCheck(t *testing.T) {
	base := baseURL(t)

	resp, err := http.Get(base + "/health-check")
	if err != nil {
		t.Fatalf("health check: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health check status = %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	if string(body) != "Health check completed!!!" {
		t.Errorf("unexpected health check body %q", body)
	}
}

func TestBlogLifecycle(t *testing.T) {
	base := baseURL(t)
	client := newClient(t)

	// Unauthenticated admin calls are rejected up front.
	resp, err := client.Get(base + "/admin/posts")
	if err != nil {
		t.Fatalf("admin posts without session: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("unauthenticated admin list status = %d, want 401", resp.StatusCode)
	}

	// Login with the seeded credentials.
	resp = postJSON(t, client, base+"/admin/login", map[string]string{
		"username": "admin",
		"password": "admin123",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d, want 200", resp.StatusCode)
	}

	// Wrong password must be indistinguishable from a wrong username.
	badClient := newClient(t)
	badResp := postJSON(t, badClient, base+"/admin/login", map[string]string{
		"username": "admin",
		"password": "wrong",
	})
	var badPass struct {
		Error string `json:"error"`
	}
	decodeBody(t, badResp, &badPass)
	badResp = postJSON(t, badClient, base+"/admin/login", map[string]string{
		"username": "nobody",
		"password": "wrong",
	})
	var badUser struct {
		Error string `json:"error"`
	}
	decodeBody(t, badResp, &badUser)
	if badPass.Error != badUser.Error {
		t.Errorf("login errors differ: %q vs %q", badPass.Error, badUser.Error)
	}

	// Create a published post.
	title := fmt.Sprintf("Integration Post %d", time.Now().UnixMilli())
	resp = postJSON(t, client, base+"/admin/posts", map[string]any{
		"title":   title,
		"content": "Written by the integration suite.",
		"status":  "published",
	})
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		t.Fatalf("create post status = %d, want 201", resp.StatusCode)
	}
	var created struct {
		ID    string `json:"id"`
		Slug  string `json:"slug"`
		Views int    `json:"views"`
	}
	decodeBody(t, resp, &created)
	if created.Slug == "" {
		t.Fatal("created post has no slug")
	}

	// It shows up in the public listing.
	resp, err = http.Get(base + "/posts?limit=50")
	if err != nil {
		t.Fatalf("list posts: %v", err)
	}
	var listing struct {
		Posts []struct {
			Slug string `json:"slug"`
		} `json:"posts"`
	}
	decodeBody(t, resp, &listing)
	found := false
	for _, p := range listing.Posts {
		if p.Slug == created.Slug {
			found = true
		}
	}
	if !found {
		t.Errorf("post %q missing from public listing", created.Slug)
	}

	// Reading the post bumps its view count.
	var first, second struct {
		Post struct {
			Views int `json:"views"`
		} `json:"post"`
	}
	resp, err = http.Get(base + "/posts/" + created.Slug)
	if err != nil {
		t.Fatalf("get post: %v", err)
	}
	decodeBody(t, resp, &first)
	resp, err = http.Get(base + "/posts/" + created.Slug)
	if err != nil {
		t.Fatalf("get post again: %v", err)
	}
	decodeBody(t, resp, &second)
	if second.Post.Views != first.Post.Views+1 {
		t.Errorf("views went %d -> %d, want +1", first.Post.Views, second.Post.Views)
	}

	// Anonymous comment submission; too-short content is rejected.
	resp = postJSON(t, client, base+"/posts/"+created.Slug+"/comments", map[string]string{
		"content": "ab",
	})
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("2-char comment status = %d, want 400", resp.StatusCode)
	}

	resp = postJSON(t, client, base+"/posts/"+created.Slug+"/comments", map[string]string{
		"authorName": "Reader",
		"content":    "Great write-up, thanks!",
	})
	if resp.StatusCode != http.StatusCreated {
		resp.Body.Close()
		t.Fatalf("comment status = %d, want 201", resp.StatusCode)
	}
	var comment struct {
		ID     string `json:"id"`
		Status string `json:"status"`
	}
	decodeBody(t, resp, &comment)
	if comment.Status != "pending" {
		t.Errorf("new comment status = %q, want pending", comment.Status)
	}

	// Pending comments are invisible on the public post page.
	var withComments struct {
		Comments []struct {
			ID string `json:"id"`
		} `json:"comments"`
	}
	resp, err = http.Get(base + "/posts/" + created.Slug)
	if err != nil {
		t.Fatalf("get post with comments: %v", err)
	}
	decodeBody(t, resp, &withComments)
	for _, c := range withComments.Comments {
		if c.ID == comment.ID {
			t.Error("pending comment visible before moderation")
		}
	}

	// Approve it and it appears.
	req, err := http.NewRequest(http.MethodPut, base+"/admin/comments/"+comment.ID+"/status",
		bytes.NewReader([]byte(`{"status":"approved"}`)))
	if err != nil {
		t.Fatalf("moderation request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("moderate comment: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("moderation status = %d, want 200", resp.StatusCode)
	}

	resp, err = http.Get(base + "/posts/" + created.Slug)
	if err != nil {
		t.Fatalf("get post after moderation: %v", err)
	}
	decodeBody(t, resp, &withComments)
	found = false
	for _, c := range withComments.Comments {
		if c.ID == comment.ID {
			found = true
		}
	}
	if !found {
		t.Error("approved comment missing from public post")
	}

	// Clean up and log out.
	req, err = http.NewRequest(http.MethodDelete, base+"/admin/posts/"+created.ID, nil)
	if err != nil {
		t.Fatalf("delete request: %v", err)
	}
	resp, err = client.Do(req)
	if err != nil {
		t.Fatalf("delete post: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("delete post status = %d, want 200", resp.StatusCode)
	}

	resp = postJSON(t, client, base+"/admin/logout", nil)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("logout status = %d, want 200", resp.StatusCode)
	}

	// The session is gone after logout.
	resp, err = client.Get(base + "/admin/posts")
	if err != nil {
		t.Fatalf("admin posts after logout: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("post-logout admin list status = %d, want 401", resp.StatusCode)
	}
}
