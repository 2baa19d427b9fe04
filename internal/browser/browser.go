package browser

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
	"go.uber.org/zap"
)

// Options configures the browser session
type Options struct {
	Width      int
	Height     int
	Timeout    time.Duration
	ProfileDir string // browser profile directory for authenticated sessions
	Logger     *zap.Logger
}

// Browser wraps the rod browser and the single page a session works on
type Browser struct {
	browser *rod.Browser
	page    *rod.Page
	log     *zap.Logger
}

// Open launches a headless browser, navigates to url, and waits for the page
// to settle. The caller owns the returned session and must Close it.
func Open(url string, opts Options) (*Browser, error) {
	if opts.Width == 0 {
		opts.Width = 1280
	}
	if opts.Height == 0 {
		opts.Height = 720
	}
	if opts.Timeout == 0 {
		opts.Timeout = 30 * time.Second
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	path, _ := launcher.LookPath()
	l := launcher.New().Bin(path).Headless(true)
	if opts.ProfileDir != "" {
		l = l.UserDataDir(opts.ProfileDir)
	}

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}
	browser := rod.New().ControlURL(u)
	if err := browser.Connect(); err != nil {
		return nil, fmt.Errorf("connect browser: %w", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: url})
	if err != nil {
		browser.Close()
		return nil, fmt.Errorf("open page: %w", err)
	}
	page.MustSetViewport(opts.Width, opts.Height, 1, false)

	b := &Browser{browser: browser, page: page, log: logger}
	if err := b.settle(opts.Timeout); err != nil {
		b.Close()
		return nil, err
	}
	return b, nil
}

// settle waits for load, network idle, and the first interactive paint.
// SPAs keep rendering after the load event, so a bare load wait is not
// enough.
func (b *Browser) settle(timeout time.Duration) error {
	if err := b.page.Timeout(timeout).WaitLoad(); err != nil {
		return fmt.Errorf("wait for load: %w", err)
	}

	// Bounded idle wait so persistent connections can't hang the scan
	b.page.Timeout(5 * time.Second).WaitRequestIdle(500*time.Millisecond, nil, nil, nil)()

	b.waitForInteractive(5 * time.Second)
	return nil
}

const interactiveProbe = `() => {
	const sel = 'a[href], button, input:not([type="hidden"]), select, textarea, [role="button"]';
	let visible = 0;
	document.querySelectorAll(sel).forEach(el => { if (el.offsetParent) visible++; });
	return visible;
}`

// waitForInteractive polls until actionable elements render or the deadline
// passes
func (b *Browser) waitForInteractive(timeout time.Duration) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		res, err := b.page.Eval(interactiveProbe)
		if err == nil && res.Value.Int() > 0 {
			// Leave a beat for final renders
			time.Sleep(300 * time.Millisecond)
			return
		}
		time.Sleep(200 * time.Millisecond)
	}
	b.log.Debug("no interactive elements rendered before deadline")
}

// Close releases the page and browser
func (b *Browser) Close() {
	if b.page != nil {
		b.page.Close()
	}
	if b.browser != nil {
		b.browser.Close()
	}
}

// Page returns the underlying rod page
func (b *Browser) Page() *rod.Page {
	return b.page
}

// Info returns the page's current URL and title
func (b *Browser) Info() (url, title string) {
	info, err := b.page.Info()
	if err != nil {
		b.log.Debug("page info unavailable", zap.Error(err))
		return "", ""
	}
	return info.URL, info.Title
}

// Screenshot captures the viewport as a decoded image
func (b *Browser) Screenshot() (image.Image, error) {
	quality := 90
	data, err := b.page.Screenshot(false, &proto.PageCaptureScreenshot{
		Format:  proto.PageCaptureScreenshotFormatPng,
		Quality: &quality,
	})
	if err != nil {
		return nil, fmt.Errorf("capture screenshot: %w", err)
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode screenshot: %w", err)
	}
	return img, nil
}
