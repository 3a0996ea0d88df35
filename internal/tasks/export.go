package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/cook/internal/formatter"
	"github.com/desertthunder/cook/internal/models"
	"github.com/desertthunder/cook/internal/shared"
	"golang.org/x/time/rate"
)

const (
	defaultWorkers   = 4
	maxWorkers       = 10
	defaultRateLimit = 5.0
	manifestName     = "manifest.json"
)

// DetailFetcher looks up the full detail of a recipe.
type DetailFetcher interface {
	Lookup(ctx context.Context, id string) (*models.RecipeDetail, error)
}

// ExportOpts contains configuration for a cookbook export.
type ExportOpts struct {
	Format     formatter.Format // text, markdown or json (default: markdown)
	OutputDir  string           // default: cookbook_{epoch}
	NumWorkers int              // concurrent lookups (default: 4, max: 10)
	RateLimit  float64          // lookups per second (default: 5)
}

// CardResult is the outcome of exporting one recipe.
type CardResult struct {
	RecipeID   string `json:"id"`
	RecipeName string `json:"name"`
	File       string `json:"file,omitempty"`
	Error      error  `json:"-"`
	Message    string `json:"error,omitempty"`

	index int
}

// ExportResult summarizes a cookbook export. Results follow the order of the input recipes.
type ExportResult struct {
	Total           int          `json:"total"`
	Succeeded       int          `json:"succeeded"`
	Failed          int          `json:"failed"`
	Format          string       `json:"format"`
	OutputDirectory string       `json:"output_directory"`
	ManifestPath    string       `json:"-"`
	Results         []CardResult `json:"results"`
}

// Exporter writes recipe cards for a set of recipes.
type Exporter struct {
	fetcher DetailFetcher
	logger  *log.Logger
}

// NewExporter creates an [Exporter] that looks recipes up through fetcher.
func NewExporter(fetcher DetailFetcher, logger *log.Logger) *Exporter {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Exporter{fetcher: fetcher, logger: shared.WithLogger(logger, "component", "cookbook")}
}

type cardJob struct {
	index  int
	recipe models.Recipe
}

// Export fetches every recipe's detail and writes a card for it into opts.OutputDir, then a manifest.
//
// Per-recipe failures are reported in the result. The returned error is reserved for problems that
// stop the whole export: an unusable format or directory, cancellation, or a manifest write failure.
func (e *Exporter) Export(
	ctx context.Context,
	prog chan<- ProgressUpdate,
	recipes []models.Recipe,
	opts ExportOpts,
) (*ExportResult, error) {
	if e.fetcher == nil {
		return nil, fmt.Errorf("%w: recipe lookup not initialized", shared.ErrServiceUnavailable)
	}

	if opts.Format == "" {
		opts.Format = formatter.FormatMarkdown
	}
	if opts.Format == formatter.FormatCSV {
		return nil, fmt.Errorf("%w: recipe cards cannot be written as %s", shared.ErrInvalidFlag, opts.Format)
	}
	if opts.OutputDir == "" {
		opts.OutputDir = fmt.Sprintf("cookbook_%d", time.Now().Unix())
	}
	if opts.NumWorkers <= 0 {
		opts.NumWorkers = defaultWorkers
	}
	if opts.NumWorkers > maxWorkers {
		opts.NumWorkers = maxWorkers
	}
	if opts.RateLimit <= 0 {
		opts.RateLimit = defaultRateLimit
	}

	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	result := &ExportResult{
		Total:           len(recipes),
		Format:          string(opts.Format),
		OutputDirectory: opts.OutputDir,
		Results:         make([]CardResult, 0, len(recipes)),
	}

	limiter := rate.NewLimiter(rate.Limit(opts.RateLimit), 1)

	jobs := make(chan cardJob, len(recipes))
	results := make(chan CardResult, len(recipes))

	for i, recipe := range recipes {
		jobs <- cardJob{index: i, recipe: recipe}
	}
	close(jobs)

	sendProgress(prog, fetchingDetailsUpdate(len(recipes)))

	var wg sync.WaitGroup
	for i := 0; i < opts.NumWorkers; i++ {
		wg.Add(1)
		go e.cardWorker(ctx, &wg, limiter, jobs, results, opts)
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	completed := 0
	for res := range results {
		completed++

		if res.Error == nil {
			result.Succeeded++
			result.Results = append(result.Results, res)
			sendProgress(prog, cardWrittenUpdate(completed, len(recipes), recipes[res.index], res.File))
			continue
		}

		result.Failed++
		res.Message = res.Error.Error()
		result.Results = append(result.Results, res)
		e.logger.Warn("recipe card failed", "id", res.RecipeID, "error", res.Error)
		sendProgress(prog, cardFailedUpdate(completed, len(recipes), recipes[res.index], res.Error))
	}

	sort.Slice(result.Results, func(i, j int) bool {
		return result.Results[i].index < result.Results[j].index
	})

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("export interrupted: %w", err)
	}

	manifestPath := filepath.Join(opts.OutputDir, manifestName)
	sendProgress(prog, manifestUpdate(manifestPath))
	if err := writeManifest(result, manifestPath); err != nil {
		return result, fmt.Errorf("export completed but failed to write manifest: %w", err)
	}
	result.ManifestPath = manifestPath
	return result, nil
}

// cardWorker exports recipes from the jobs channel until it is drained.
func (e *Exporter) cardWorker(
	ctx context.Context,
	wg *sync.WaitGroup,
	limiter *rate.Limiter,
	jobs <-chan cardJob,
	results chan<- CardResult,
	opts ExportOpts,
) {
	defer wg.Done()

	for job := range jobs {
		res := CardResult{RecipeID: job.recipe.ID, RecipeName: job.recipe.Name, index: job.index}

		if err := limiter.Wait(ctx); err != nil {
			res.Error = err
			results <- res
			continue
		}

		res.File, res.Error = e.exportCard(ctx, job.recipe, opts)
		results <- res
	}
}

// exportCard looks up a single recipe and writes its card.
func (e *Exporter) exportCard(ctx context.Context, recipe models.Recipe, opts ExportOpts) (string, error) {
	detail, err := e.fetcher.Lookup(ctx, recipe.ID)
	if err != nil {
		return "", fmt.Errorf("lookup failed: %w", err)
	}

	var data []byte
	switch opts.Format {
	case formatter.FormatJSON:
		if data, err = formatter.RecipeToJSON(detail); err != nil {
			return "", fmt.Errorf("JSON marshal failed: %w", err)
		}
	case formatter.FormatText:
		data = formatter.RecipeToText(detail)
	default:
		data = formatter.RecipeToMarkdown(detail)
	}

	path := filepath.Join(opts.OutputDir, CardFilename(recipe, opts.Format))
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("write failed: %w", err)
	}
	return path, nil
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

// CardFilename names the card for recipe, e.g. 52772-teriyaki-chicken-casserole.md.
func CardFilename(recipe models.Recipe, format formatter.Format) string {
	slug := strings.Trim(nonSlug.ReplaceAllString(strings.ToLower(recipe.Name), "-"), "-")
	if slug == "" {
		return recipe.ID + format.Extension()
	}
	return recipe.ID + "-" + slug + format.Extension()
}

func writeManifest(result *ExportResult, path string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
