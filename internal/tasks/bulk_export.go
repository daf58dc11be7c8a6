package tasks

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/desertthunder/spx/internal/formatter"
	"github.com/desertthunder/spx/internal/models"
	"github.com/desertthunder/spx/internal/shared"
	"golang.org/x/time/rate"
)

// BulkExportOpts configures a bulk playlist export.
type BulkExportOpts struct {
	Format        string                                               // Export format: json, csv, markdown, text
	OutputDir     string                                               // Base output directory (default: spotify_export_{epoch})
	NumWorkers    int                                                  // Concurrent workers (default: 5, max: 10)
	RateLimit     float64                                              // Playlist fetches per second (default: 5)
	GetCoverImage func(ctx context.Context, id string) (string, error) // Cover URL fetcher for markdown exports
}

// PlaylistExportJob pairs a fetched export with the ID it was
// requested under.
type PlaylistExportJob struct {
	PlaylistID string
	Export     *models.PlaylistExport
}

// PlaylistExportResult records the outcome of one playlist's export.
type PlaylistExportResult struct {
	PlaylistID   string
	PlaylistName string
	Success      bool
	Files        []string
	Error        error
}

// BulkExportResult summarizes a bulk export run.
type BulkExportResult struct {
	TotalPlaylists    int
	SuccessfulExports int
	FailedExports     int
	OutputDirectory   string
	ManifestPath      string
	Results           []PlaylistExportResult
}

// BulkExport exports multiple playlists concurrently. Playlist fetches
// are rate limited, file writes run on a bounded worker pool, and the
// run ends with a manifest file summarizing every result. Individual
// failures are recorded, not fatal.
func (e *Engine) BulkExport(ctx context.Context, prog chan<- ProgressUpdate, ids []string, opts BulkExportOpts) (*BulkExportResult, error) {
	if e.client == nil {
		return nil, fmt.Errorf("%w: no API client configured", shared.ErrNotAuthenticated)
	}

	if opts.Format == "" {
		opts.Format = "json"
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("spotify_export_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = 5
	}
	if opts.NumWorkers > 10 {
		opts.NumWorkers = 10
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = 5.0
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &BulkExportResult{
		TotalPlaylists:  len(ids),
		OutputDirectory: opts.OutputDir,
		Results:         make([]PlaylistExportResult, 0, len(ids)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan PlaylistExportJob, len(ids))
	results := make(chan PlaylistExportResult, len(ids))

	var wg sync.WaitGroup
	for range opts.NumWorkers {
		wg.Add(1)
		go e.exportWorker(ctx, &wg, jobs, results, opts)
	}

	go func() {
		defer close(jobs)
		for i, id := range ids {
			if ctx.Err() != nil {
				return
			}
			if err := limiter.Wait(ctx); err != nil {
				return
			}

			export, err := e.fetchExport(ctx, nil, id)
			if err != nil {
				results <- PlaylistExportResult{
					PlaylistID:   id,
					PlaylistName: fmt.Sprintf("Unknown (%s)", id),
					Error:        fmt.Errorf("failed to fetch playlist: %w", err),
				}
				continue
			}

			jobs <- PlaylistExportJob{PlaylistID: id, Export: export}
			e.sendProgress(prog, exportingPlaylistUpdate(i+1, len(ids), export.Playlist.Name))
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++
		result.Results = append(result.Results, res)

		if res.Success {
			result.SuccessfulExports++
			e.sendProgress(prog, exportCompletedUpdate(completed, len(ids), res.PlaylistName, len(res.Files)))
		} else {
			result.FailedExports++
			e.sendProgress(prog, exportFailedUpdate(completed, len(ids), res.PlaylistName, res.Error))
		}
	}

	manifestPath := filepath.Join(opts.OutputDir, "export_manifest.json")
	if err := formatter.WriteBulkExportManifest(buildManifest(result, opts.Format), manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// exportWorker writes exports from the jobs channel until it closes.
func (e *Engine) exportWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	jobs <-chan PlaylistExportJob,
	results chan<- PlaylistExportResult,
	opts BulkExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		if ctx.Err() != nil {
			return
		}
		results <- e.writeExport(ctx, job, opts)
	}
}

// writeExport writes one playlist export in the requested format.
func (e *Engine) writeExport(ctx context.Context, job PlaylistExportJob, opts BulkExportOpts) PlaylistExportResult {
	result := PlaylistExportResult{
		PlaylistID:   job.PlaylistID,
		PlaylistName: job.Export.Playlist.Name,
		Files:        []string{},
	}

	switch opts.Format {
	case "csv":
		base := filepath.Join(opts.OutputDir, job.Export.Playlist.ID)
		csvRes, err := formatter.WriteCSVExport(job.Export, base)
		if err != nil {
			result.Error = fmt.Errorf("CSV export failed: %w", err)
			return result
		}
		result.Files = []string{csvRes.TracksFile, csvRes.MetadataFile}
		result.Success = true

	case "markdown":
		dir := filepath.Join(opts.OutputDir, job.Export.Playlist.ID)

		var imageURL string
		if opts.GetCoverImage != nil {
			if url, err := opts.GetCoverImage(ctx, job.PlaylistID); err == nil {
				imageURL = url
			}
		}

		mdRes, err := formatter.WriteMarkdownExport(ctx, job.Export, dir, imageURL)
		if err != nil {
			result.Error = fmt.Errorf("markdown export failed: %w", err)
			return result
		}
		result.Files = mdRes.Files
		result.Success = true

	case "text", "txt":
		path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s_tracks.txt", job.Export.Playlist.ID))
		written, err := formatter.WriteTextExport(job.Export, path)
		if err != nil {
			result.Error = fmt.Errorf("text export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true

	default:
		path := filepath.Join(opts.OutputDir, fmt.Sprintf("%s.json", job.Export.Playlist.ID))
		written, err := formatter.WriteJSONExport(job.Export, path)
		if err != nil {
			result.Error = fmt.Errorf("JSON export failed: %w", err)
			return result
		}
		result.Files = []string{written}
		result.Success = true
	}
	return result
}

// buildManifest converts a run's results into the manifest shape.
func buildManifest(result *BulkExportResult, format string) *formatter.ExportManifest {
	manifest := &formatter.ExportManifest{
		GeneratedAt:    time.Now().UTC(),
		Format:         format,
		OutputDir:      result.OutputDirectory,
		TotalPlaylists: result.TotalPlaylists,
		Successful:     result.SuccessfulExports,
		Failed:         result.FailedExports,
	}
	for _, res := range result.Results {
		entry := formatter.ManifestEntry{
			PlaylistID: res.PlaylistID,
			Name:       res.PlaylistName,
			Status:     "success",
			Files:      res.Files,
		}
		if !res.Success {
			entry.Status = "failed"
		}
		if res.Error != nil {
			entry.Error = res.Error.Error()
		}
		manifest.Playlists = append(manifest.Playlists, entry)
	}
	return manifest
}
