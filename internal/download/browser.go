// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package download

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
	"time"

	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"

	"github.com/DBDXSS/ScholarDock/pkg/types"
)

// BrowserDriver reaches artifacts that only appear after script execution.
// Download drives a real browser at pageURL and reports whether a valid
// PDF was stored at dest. Implementations must be non-fatal: internal
// errors and timeouts degrade to a false return, never a panic or an
// aborted batch.
type BrowserDriver interface {
	Download(ctx context.Context, pageURL, dest string) bool
}

// scriptRequiredHosts are publishers that never hand the PDF to a plain
// HTTP client.
var scriptRequiredHosts = []string{
	"ieeexplore.ieee.org",
	"dl.acm.org",
	"www.sciencedirect.com",
	"link.springer.com",
}

// BrowserRequired reports whether the landing host is known to require
// script execution to reach the PDF.
func BrowserRequired(landingURL string) bool {
	u, err := url.Parse(landingURL)
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range scriptRequiredHosts {
		if host == h {
			return true
		}
	}
	return false
}

// downloadControls are selectors for download buttons and links clicked
// after the page settles, in case the PDF only loads on interaction.
var downloadControls = []string{
	`a[href$=".pdf"]`,
	`a[class*="pdf"]`,
	`button[class*="download"]`,
	`a[title*="PDF"]`,
}

// browserSettleDelay gives page scripts time to fire their own download
// before controls are clicked.
const browserSettleDelay = 2 * time.Second

// ChromeDriver satisfies BrowserDriver by driving headless Chrome through
// the DevTools protocol. The browser process is launched per Download call
// and torn down with it.
type ChromeDriver struct {
	userAgent string
	timeout   time.Duration
	w         io.Writer
}

// NewChromeDriver builds a driver from the download config. Progress lines
// go to w; pass nil to suppress them.
func NewChromeDriver(cfg types.DownloadConfig, w io.Writer) *ChromeDriver {
	timeout := cfg.BrowserTimeout
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	if w == nil {
		w = io.Discard
	}
	return &ChromeDriver{userAgent: cfg.UserAgent, timeout: timeout, w: w}
}

// Download loads pageURL in headless Chrome, watches network traffic for a
// response carrying the PDF signature, and clicks recognized download
// controls if nothing arrives on its own. The whole attempt is bounded by
// the configured timeout.
func (d *ChromeDriver) Download(ctx context.Context, pageURL, dest string) bool {
	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, append(
		chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(d.userAgent),
	)...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	runCtx, cancelRun := context.WithTimeout(browserCtx, d.timeout)
	defer cancelRun()

	if err := chromedp.Run(runCtx, network.Enable()); err != nil {
		fmt.Fprintf(d.w, "  browser launch failed: %v\n", err)
		return false
	}

	// Capture the first network response whose body carries the PDF
	// signature. The body fetch runs off the event loop; chromedp delivers
	// events synchronously and GetResponseBody would deadlock inline.
	found := make(chan []byte, 1)
	chromedp.ListenTarget(runCtx, func(ev interface{}) {
		resp, ok := ev.(*network.EventResponseReceived)
		if !ok || !strings.Contains(strings.ToLower(resp.Response.MimeType), "pdf") {
			return
		}
		requestID := resp.RequestID
		go func() {
			var body []byte
			err := chromedp.Run(runCtx, chromedp.ActionFunc(func(c context.Context) error {
				b, err := network.GetResponseBody(requestID).Do(c)
				body = b
				return err
			}))
			if err == nil && bytes.HasPrefix(body, pdfMagic) {
				select {
				case found <- body:
				default:
				}
			}
		}()
	})

	if err := chromedp.Run(runCtx, chromedp.Navigate(pageURL), chromedp.Sleep(browserSettleDelay)); err != nil {
		fmt.Fprintf(d.w, "  browser navigation failed: %v\n", err)
		return false
	}

	// Poke recognized download controls; each attempt is bounded so a
	// missing control cannot eat the whole budget.
	for _, sel := range downloadControls {
		select {
		case body := <-found:
			return d.persist(dest, body)
		default:
		}
		clickCtx, cancelClick := context.WithTimeout(runCtx, 3*time.Second)
		_ = chromedp.Run(clickCtx, chromedp.Click(sel, chromedp.ByQuery, chromedp.NodeVisible))
		cancelClick()
	}

	select {
	case body := <-found:
		return d.persist(dest, body)
	case <-runCtx.Done():
		fmt.Fprintf(d.w, "  browser fallback gave up: %s\n", pageURL)
		return false
	}
}

func (d *ChromeDriver) persist(dest string, body []byte) bool {
	if err := writeArtifact(dest, body); err != nil {
		fmt.Fprintf(d.w, "  browser artifact write failed: %v\n", err)
		return false
	}
	return true
}
