package watcher

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/novaforge/sitekit/internal/content"
	"github.com/novaforge/sitekit/internal/logging"
)

func seedContentDir(t *testing.T, companyName string) string {
	t.Helper()
	dir := t.TempDir()
	writeCollections(t, dir, companyName)
	return dir
}

func writeCollections(t *testing.T, dir, companyName string) {
	t.Helper()
	collections := map[string]interface{}{
		content.CollectionServices:     []content.Service{{ID: "1", Slug: "software-development"}},
		content.CollectionCaseStudies:  []content.CaseStudy{{ID: "1", Slug: "platform"}},
		content.CollectionBlogPosts:    []content.BlogPost{{ID: "1", Slug: "post", PublishedAt: "2024-01-01"}},
		content.CollectionTestimonials: []content.Testimonial{{ID: "1", Rating: 5}},
		content.CollectionTeam:         []content.TeamMember{{ID: "1", Name: "Ada"}},
		content.CollectionCompany:      content.Company{Name: companyName},
	}
	for name, records := range collections {
		data, err := json.Marshal(records)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name+".json"), data, 0o644))
	}
}

func TestWatcherReloadsOnChange(t *testing.T) {
	dir := seedContentDir(t, "Before")
	source := content.NewDirSource(dir)
	store, err := source.Load()
	require.NoError(t, err)
	snapshot := content.NewSnapshot(store)

	w, err := New(source, snapshot, 50*time.Millisecond, logging.Nop())
	require.NoError(t, err)
	defer w.Stop()

	var handlerCalls atomic.Int32
	w.AddHandler(func(store *content.Store) {
		handlerCalls.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	writeCollections(t, dir, "After")

	assert.Eventually(t, func() bool {
		return snapshot.Current().Company.Name == "After"
	}, 5*time.Second, 20*time.Millisecond)
	assert.Eventually(t, func() bool {
		return handlerCalls.Load() >= 1
	}, 5*time.Second, 20*time.Millisecond)
}

func TestWatcherKeepsSnapshotOnBrokenEdit(t *testing.T) {
	dir := seedContentDir(t, "Stable")
	source := content.NewDirSource(dir)
	store, err := source.Load()
	require.NoError(t, err)
	snapshot := content.NewSnapshot(store)

	w, err := New(source, snapshot, 30*time.Millisecond, logging.Nop())
	require.NoError(t, err)
	defer w.Stop()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	broken := filepath.Join(dir, content.CollectionServices+".json")
	require.NoError(t, os.WriteFile(broken, []byte("{not json"), 0o644))

	time.Sleep(500 * time.Millisecond)
	assert.Equal(t, "Stable", snapshot.Current().Company.Name)
	assert.Len(t, snapshot.Current().Services, 1)
}

func TestWatcherIgnoresUnrelatedFiles(t *testing.T) {
	dir := seedContentDir(t, "Quiet")
	source := content.NewDirSource(dir)
	store, err := source.Load()
	require.NoError(t, err)
	snapshot := content.NewSnapshot(store)

	w, err := New(source, snapshot, 30*time.Millisecond, logging.Nop())
	require.NoError(t, err)
	defer w.Stop()

	var handlerCalls atomic.Int32
	w.AddHandler(func(store *content.Store) {
		handlerCalls.Add(1)
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("scratch"), 0o644))

	time.Sleep(300 * time.Millisecond)
	assert.Zero(t, handlerCalls.Load())
}

func TestWatcherRequiresExistingDir(t *testing.T) {
	source := content.NewDirSource("/nonexistent/content")
	_, err := New(source, content.NewSnapshot(&content.Store{}), time.Millisecond, logging.Nop())
	assert.Error(t, err)
}

func TestIsContentFile(t *testing.T) {
	assert.True(t, isContentFile("services.json"))
	assert.True(t, isContentFile("team.YAML"))
	assert.True(t, isContentFile("blog_posts.yml"))
	assert.False(t, isContentFile("notes.txt"))
	assert.False(t, isContentFile("seed.db"))
}
