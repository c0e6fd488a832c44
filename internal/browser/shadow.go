package browser

import (
	"encoding/json"
	"fmt"

	"github.com/go-rod/rod"
)

// flattenJS inlines open shadow roots and same-origin iframe documents into
// the light DOM so a single outerHTML read yields a parseable snapshot.
// Shadow content lands in <div data-shadow-root> appended to its host;
// iframes are replaced by <div data-captured-iframe>. Children are processed
// before their parent is serialized, since an iframe inside a shadow root
// loses its document once the root is cloned.
const flattenJS = `() => {
	const MAX_DEPTH = 100;
	let shadows = 0, frames = 0;

	function copyStyles(from, into, marker) {
		from.querySelectorAll('style').forEach((style) => {
			const s = into.ownerDocument.createElement('style');
			s.setAttribute(marker, 'true');
			s.textContent = style.textContent;
			into.appendChild(s);
		});
	}

	function walk(node, depth) {
		if (depth > MAX_DEPTH) return;
		for (const child of Array.from(node.childNodes)) {
			if (child.nodeType === Node.ELEMENT_NODE) visit(child, depth);
		}
	}

	function visit(el, depth) {
		if (el.tagName === 'IFRAME') { inlineFrame(el, depth); return; }
		walk(el, depth + 1);
		if (el.shadowRoot) inlineShadow(el, depth);
	}

	function inlineShadow(host, depth) {
		const root = host.shadowRoot;
		walk(root, depth + 1);

		const box = document.createElement('div');
		box.setAttribute('data-shadow-root', 'true');
		box.setAttribute('data-shadow-host', host.tagName.toLowerCase());
		copyStyles(root, box, 'data-from-shadow');
		for (const child of Array.from(root.childNodes)) {
			if (child.nodeType === Node.ELEMENT_NODE && child.tagName === 'STYLE') continue;
			try { box.appendChild(child.cloneNode(true)); } catch (e) {}
		}
		host.appendChild(box);
		shadows++;
	}

	function inlineFrame(frame, depth) {
		const owner = frame.ownerDocument;
		const box = owner.createElement('div');
		box.setAttribute('data-captured-iframe', 'true');
		box.setAttribute('data-iframe-src', frame.src || '');
		box.setAttribute('data-iframe-id', frame.id || '');
		box.setAttribute('data-iframe-name', frame.name || '');
		try {
			const doc = frame.contentDocument || (frame.contentWindow && frame.contentWindow.document);
			if (!doc || !doc.documentElement) throw new Error('no contentDocument available');
			walk(doc.documentElement, depth + 1);
			if (doc.head) copyStyles(doc.head, box, 'data-from-iframe');
			if (doc.body) box.innerHTML += doc.body.innerHTML;
			frames++;
		} catch (e) {
			box.setAttribute('data-iframe-error', e.message);
			box.textContent = '[iframe not accessible: ' + e.message + ']';
		}
		try { frame.parentNode.replaceChild(box, frame); } catch (e) {}
	}

	walk(document.documentElement, 0);
	return JSON.stringify({html: document.documentElement.outerHTML, shadowCount: shadows, iframeCount: frames});
}`

// Snapshot is a flattened copy of a live page.
type Snapshot struct {
	HTML        string `json:"html"`
	ShadowCount int    `json:"shadowCount"`
	IframeCount int    `json:"iframeCount"`
}

// FlattenShadowDOM serializes page with shadow roots and iframes inlined.
// It rewrites the live DOM, so the page should be reloaded before further
// interaction. If the script fails the plain page HTML is returned.
func FlattenShadowDOM(page *rod.Page) (Snapshot, error) {
	res, evalErr := page.Eval(flattenJS)
	if evalErr == nil {
		var snap Snapshot
		if err := json.Unmarshal([]byte(res.Value.Str()), &snap); err == nil {
			return snap, nil
		}
	}

	html, err := page.HTML()
	if err != nil {
		return Snapshot{}, fmt.Errorf("flatten page failed and fallback HTML failed: %w", err)
	}
	return Snapshot{HTML: html}, nil
}
