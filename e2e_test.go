//go:build e2e

package main

import (
	"context"
	"testing"
	"time"

	"github.com/chromedp/chromedp"
)

func TestDashboardBrowser(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	browserCtx, browserCancel := chromedp.NewContext(allocCtx)
	defer browserCancel()

	t.Run("initial figures rendered", func(t *testing.T) {
		var pieTitle, scatterTitle string
		var ok bool
		err := chromedp.Run(browserCtx,
			chromedp.Navigate(srv.URL),
			chromedp.WaitVisible(`#success-pie-chart[data-figure-title]`, chromedp.ByQuery),
			chromedp.WaitVisible(`#success-payload-scatter-chart[data-figure-title]`, chromedp.ByQuery),
			chromedp.AttributeValue(`#success-pie-chart`, "data-figure-title", &pieTitle, &ok, chromedp.ByQuery),
			chromedp.AttributeValue(`#success-payload-scatter-chart`, "data-figure-title", &scatterTitle, &ok, chromedp.ByQuery),
		)
		if err != nil {
			t.Fatalf("chromedp: %v", err)
		}
		if pieTitle != "Launch Outcome, All Launch Sites" {
			t.Errorf("pie title = %q", pieTitle)
		}
		if scatterTitle != "Launch Outcome, All Launch Sites" {
			t.Errorf("scatter title = %q", scatterTitle)
		}
	})

	t.Run("selecting a site updates the pie", func(t *testing.T) {
		var pieTitle string
		var ok bool
		err := chromedp.Run(browserCtx,
			chromedp.SetValue(`#site-dropdown`, "KSC LC-39A", chromedp.ByQuery),
			chromedp.Evaluate(`document.getElementById("site-dropdown").dispatchEvent(new Event("change"))`, nil),
			chromedp.WaitVisible(`#success-pie-chart[data-figure-title="Launch Outcome at Launch Site KSC LC-39A"]`, chromedp.ByQuery),
			chromedp.AttributeValue(`#success-pie-chart`, "data-figure-title", &pieTitle, &ok, chromedp.ByQuery),
		)
		if err != nil {
			t.Fatalf("chromedp: %v", err)
		}
		if pieTitle != "Launch Outcome at Launch Site KSC LC-39A" {
			t.Errorf("pie title = %q", pieTitle)
		}
	})

	t.Run("last selection wins", func(t *testing.T) {
		var pieTitle string
		var ok bool
		err := chromedp.Run(browserCtx,
			chromedp.Evaluate(`(function () {
				const el = document.getElementById("site-dropdown");
				["VAFB SLC-4E", "CCAFS LC-40", "CCAFS SLC-40"].forEach(function (site) {
					el.value = site;
					el.dispatchEvent(new Event("change"));
				});
			})()`, nil),
			chromedp.WaitVisible(`#success-pie-chart[data-figure-title="Launch Outcome at Launch Site CCAFS SLC-40"]`, chromedp.ByQuery),
			chromedp.Sleep(500*time.Millisecond),
			chromedp.AttributeValue(`#success-pie-chart`, "data-figure-title", &pieTitle, &ok, chromedp.ByQuery),
		)
		if err != nil {
			t.Fatalf("chromedp: %v", err)
		}
		if pieTitle != "Launch Outcome at Launch Site CCAFS SLC-40" {
			t.Errorf("pie title = %q after rapid changes", pieTitle)
		}
	})
}
