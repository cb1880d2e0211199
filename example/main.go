// Package main demonstrates how to use the adskip ad detection library.
//
// This example shows:
// 1. Initializing the detection client with a provider
// 2. Running a detection over captions and comments
// 3. Handling detection results via hooks
// 4. Prefetching several videos as a batch
// 5. Turning a result into a playback decision
package main

import (
	"context"
	"database/sql"
	"log"
	"os"

	adskip "github.com/heibot/adskip"
	"github.com/heibot/adskip/client"
	"github.com/heibot/adskip/hooks"
	"github.com/heibot/adskip/playback"
	"github.com/heibot/adskip/providers"
	"github.com/heibot/adskip/providers/deepseek"
	sqlstore "github.com/heibot/adskip/store/sql"

	_ "github.com/go-sql-driver/mysql" // MySQL driver
)

func main() {
	ctx := context.Background()

	// ============================================================
	// Step 1: Initialize Database Store
	// ============================================================
	db, err := sql.Open("mysql", "user:password@tcp(localhost:3306)/adskip?parseTime=true")
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	store := sqlstore.NewWithDB(db, sqlstore.DialectMySQL)

	// ============================================================
	// Step 2: Initialize Provider
	// ============================================================
	dsProvider, err := deepseek.New(providers.Config{
		APIKey: os.Getenv("DEEPSEEK_API_KEY"),
	})
	if err != nil {
		log.Fatalf("Failed to create deepseek provider: %v", err)
	}

	// Wrap with retry and call logging.
	providers.SetGlobalLogger(providers.NewStandardLogger(providers.DefaultLoggerConfig()))
	resilient := providers.WrapWithResilience(dsProvider)

	// ============================================================
	// Step 3: Implement Business Hooks
	// ============================================================
	myHooks := hooks.FuncHooks{
		OnAdDetectedFunc: func(ctx context.Context, e hooks.AdDetectedEvent) error {
			log.Printf("[Hook] Ad in %s: %.1fs-%.1fs advertiser=%s (source=%s)",
				e.Video.ID, e.Result.StartTime, e.Result.EndTime, e.Result.Advertiser, e.Source)
			return nil
		},
		OnRuleLearnedFunc: func(ctx context.Context, e hooks.RuleLearnedEvent) error {
			log.Printf("[Hook] Learned advertiser %q, rule set now %d entries", e.Advertiser, e.RuleCount)
			return nil
		},
		OnDetectionFailedFunc: func(ctx context.Context, e hooks.DetectionFailedEvent) error {
			log.Printf("[Hook] Detection failed for %s: category=%s", e.Video.ID, e.Category)
			return nil
		},
	}

	// ============================================================
	// Step 4: Create Detection Client
	// ============================================================
	opts := client.DefaultOptions()
	opts.Store = store
	opts.Hooks = myHooks
	opts.Provider = resilient
	opts.CheckConnectivity = true

	detector, err := client.New(opts)
	if err != nil {
		log.Fatalf("Failed to create client: %v", err)
	}

	// Keep the cache bounded in the background.
	pruner := client.NewPruner(detector, client.DefaultPrunerConfig())
	pruner.Start(ctx)
	defer pruner.Stop()

	// ============================================================
	// Example 1: Detect over a subtitle track
	// ============================================================
	log.Println("\n=== Example 1: Caption Route ===")

	detector.SetActive("BV1xx411c7mD")
	outcome, err := detector.Detect(ctx, client.DetectInput{
		Video: adskip.VideoInfo{
			ID:       "BV1xx411c7mD",
			Title:    "一口气看完三国",
			Duration: 1800,
		},
		Captions: []adskip.TimedSpanText{
			{From: 0, To: 4, Content: "大家好"},
			{From: 120, To: 124, Content: "感谢金主爸爸的赞助"},
			{From: 125, To: 129, Content: "点击下方链接下单有折扣"},
			{From: 140, To: 144, Content: "领券更优惠"},
			{From: 180, To: 184, Content: "我们言归正传"},
		},
		LoggedIn: true,
	})
	if err != nil {
		log.Printf("Detection failed: %v", err)
	} else {
		log.Printf("Status=%s Source=%s", outcome.Status, outcome.Source)
	}

	// ============================================================
	// Example 2: Comment fallback route
	// ============================================================
	log.Println("\n=== Example 2: Comment Route ===")

	detector.SetActive("BV2yy411d8nE")
	outcome, err = detector.Detect(ctx, client.DetectInput{
		Video: adskip.VideoInfo{
			ID:             "BV2yy411d8nE",
			Title:          "家常红烧肉教程",
			Duration:       900,
			CommentTrackID: 181735660,
		},
		Comments: []adskip.TimedText{
			{Time: 65, Content: "来了来了"},
			{Time: 310, Content: "广告来了，直接跳"},
			{Time: 315, Content: "恰饭时间"},
			{Time: 600, Content: "学会了"},
		},
		LoggedIn: true,
	})
	if err != nil {
		log.Printf("Detection failed: %v", err)
	} else {
		log.Printf("Status=%s Source=%s", outcome.Status, outcome.Source)
	}

	// ============================================================
	// Example 3: Turn the result into a playback decision
	// ============================================================
	log.Println("\n=== Example 3: Playback Decision ===")

	if outcome != nil && outcome.Result != nil {
		decision := playback.Decide(playback.PolicyAutoSkip, outcome.Result)
		log.Printf("Player action=%s seekTo=%.1fs", decision.Action, decision.SeekTo)
	}

	// ============================================================
	// Example 4: Prefetch a queue of videos
	// ============================================================
	log.Println("\n=== Example 4: Batch Prefetch ===")

	batch, err := detector.DetectBatch(ctx, client.DetectBatchInput{
		Items: []client.DetectInput{
			{Video: adskip.VideoInfo{ID: "BV3a", Duration: 700, CommentTrackID: 1}, LoggedIn: true},
			{Video: adskip.VideoInfo{ID: "BV3b", Duration: 1200, CommentTrackID: 2}, LoggedIn: true},
		},
		Concurrency: 2,
	})
	if err != nil {
		log.Printf("Batch failed: %v", err)
	} else {
		log.Printf("Batch: detected=%d noAd=%d skipped=%d failed=%d",
			batch.DetectedCount, batch.NoAdCount, batch.SkippedCount, batch.FailedCount)
	}

	log.Println("\n=== Demo Complete ===")
}
