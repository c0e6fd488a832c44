package browser

import (
	"fmt"

	"github.com/go-rod/rod"
)

// WaitForIFrames waits for DOM stability on page and, recursively, on every
// visible iframe below it.
func WaitForIFrames(page *rod.Page) error {
	if err := page.WaitDOMStable(PollInterval*3, 0); err != nil {
		return err
	}

	iframes, err := page.Elements("iframe")
	if err != nil {
		return nil
	}

	for _, iframe := range iframes {
		if visible, _ := iframe.Visible(); !visible {
			continue
		}

		frame, err := iframe.Frame()
		if err != nil {
			continue
		}

		if err := WaitForIFrames(frame); err != nil {
			return err
		}
	}

	return nil
}

// GetDeepestVisibleFrame follows the first visible iframe at every level and
// returns the innermost frame, or page itself when it has none.
func GetDeepestVisibleFrame(page *rod.Page) (*rod.Page, error) {
	iframes, err := page.Elements("iframe")
	if err != nil {
		return page, nil
	}

	for _, iframe := range iframes {
		if visible, _ := iframe.Visible(); !visible {
			continue
		}
		child, err := iframe.Frame()
		if err != nil {
			return nil, fmt.Errorf("failed to get frame context: %w", err)
		}
		return GetDeepestVisibleFrame(child)
	}

	return page, nil
}

// GetIFrameBySelector returns the frame context for a specific iframe selector.
func GetIFrameBySelector(page *rod.Page, selector string) (*rod.Page, error) {
	iframeEl, err := page.Element(selector)
	if err != nil {
		return nil, fmt.Errorf("iframe element not found: %w", err)
	}

	frame, err := iframeEl.Frame()
	if err != nil {
		return nil, fmt.Errorf("failed to get frame context: %w", err)
	}

	return frame, nil
}

// DeepestFrame returns a document for the innermost visible frame of d.
func (d *RodDocument) DeepestFrame() (*RodDocument, error) {
	frame, err := GetDeepestVisibleFrame(d.page)
	if err != nil {
		return nil, err
	}
	return &RodDocument{page: frame, typing: d.typing}, nil
}
