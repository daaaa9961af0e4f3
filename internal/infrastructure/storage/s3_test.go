package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
)

type recordingAPI struct {
	puts    map[string]string
	types   map[string]string
	deletes []string
	putErr  error
}

func (r *recordingAPI) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if r.putErr != nil {
		return nil, r.putErr
	}
	raw, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}
	if params.ContentLength == nil || *params.ContentLength != int64(len(raw)) {
		return nil, errors.New("content length mismatch")
	}
	r.puts[*params.Key] = string(raw)
	r.types[*params.Key] = *params.ContentType
	return &s3.PutObjectOutput{}, nil
}

func (r *recordingAPI) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	r.deletes = append(r.deletes, *params.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3Storage_PutAndKeyForURL(t *testing.T) {
	t.Parallel()

	api := &recordingAPI{puts: map[string]string{}, types: map[string]string{}}
	store := newS3Storage(api, "media", "https://cdn.example.com/storage/v1/object/public/media/")

	url, err := store.Put(context.Background(), "/teams/1/logo.png", "image/png", strings.NewReader("png-bytes"), 9)
	if err != nil {
		t.Fatalf("put: %v", err)
	}
	if url != "https://cdn.example.com/storage/v1/object/public/media/teams/1/logo.png" {
		t.Fatalf("unexpected public url: %s", url)
	}
	if api.puts["teams/1/logo.png"] != "png-bytes" || api.types["teams/1/logo.png"] != "image/png" {
		t.Fatalf("unexpected upload: %+v %+v", api.puts, api.types)
	}

	key, ok := store.KeyForURL(url + "?v=2")
	if !ok || key != "teams/1/logo.png" {
		t.Fatalf("unexpected key: %q ok=%v", key, ok)
	}
	if _, ok := store.KeyForURL("https://elsewhere.example.com/logo.png"); ok {
		t.Fatalf("foreign urls must not resolve to keys")
	}
}

func TestS3Storage_PutWrapsErrors(t *testing.T) {
	t.Parallel()

	boom := errors.New("access denied")
	store := newS3Storage(&recordingAPI{putErr: boom}, "media", "https://cdn.example.com")

	if _, err := store.Put(context.Background(), "a.png", "image/png", strings.NewReader("x"), 1); !errors.Is(err, boom) {
		t.Fatalf("expected wrapped sdk error, got %v", err)
	}
	if _, err := store.Put(context.Background(), " ", "image/png", strings.NewReader("x"), 1); err == nil {
		t.Fatalf("expected empty key rejection")
	}
}

func TestS3Storage_DeleteSkipsEmptyKey(t *testing.T) {
	t.Parallel()

	api := &recordingAPI{}
	store := newS3Storage(api, "media", "https://cdn.example.com")

	if err := store.Delete(context.Background(), ""); err != nil {
		t.Fatalf("delete empty: %v", err)
	}
	if err := store.Delete(context.Background(), "players/2/a.webp"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(api.deletes) != 1 || api.deletes[0] != "players/2/a.webp" {
		t.Fatalf("unexpected deletes: %v", api.deletes)
	}
}
