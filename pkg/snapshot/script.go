package snapshot

// HighlightAttr is the synthetic attribute the overlay pass writes on every
// indexed element. It encodes the element's highlight index and serves only
// as the resolver's last-resort selector.
const HighlightAttr = "data-pilot-index"

// overlayID identifies the overlay container so a rebuild can remove the
// previous one before painting.
const overlayID = "pagepilot-highlight-overlay"

// buildTreeScript is the in-page traversal. It is evaluated with a single
// argument object {highlightEnabled, focusIndex, viewportExpansion} and
// returns {url, title, root, warnings}.
//
// The traversal is a pre-order walk from document.body that crosses shadow
// roots and same-origin iframes while keeping one shared highlight counter.
// Cross-origin iframes contribute zero children and a warning entry; the
// walk itself never aborts. The previous overlay container and any stale
// highlight attributes are removed before each build so overlays never
// accumulate.
const buildTreeScript = `(args) => {
	const highlightEnabled = !!args.highlightEnabled;
	const focusIndex = typeof args.focusIndex === 'number' ? args.focusIndex : -1;
	const viewportExpansion = typeof args.viewportExpansion === 'number' ? args.viewportExpansion : 0;

	const HIGHLIGHT_ATTR = 'data-pilot-index';
	const OVERLAY_ID = 'pagepilot-highlight-overlay';

	const DENY_TAGS = new Set(['script', 'style', 'svg', 'link', 'meta']);
	const INTERACTIVE_TAGS = new Set([
		'a', 'button', 'details', 'embed', 'input', 'label', 'menu',
		'menuitem', 'object', 'select', 'textarea', 'summary'
	]);
	const INTERACTIVE_ROLES = new Set([
		'button', 'link', 'checkbox', 'radio', 'tab', 'menuitem',
		'menuitemcheckbox', 'menuitemradio', 'option', 'switch',
		'searchbox', 'textbox', 'combobox', 'listbox', 'slider',
		'spinbutton', 'scrollbar', 'grid', 'gridcell', 'tree', 'treeitem'
	]);
	const ADDRESS_AUTOCOMPLETE_CLASS = 'address-autocomplete';
	const DROPDOWN_ACTIONS = new Set(['open-dropdown', 'select-option']);
	const TOGGLE_ARIA_ATTRS = ['aria-expanded', 'aria-pressed', 'aria-selected', 'aria-checked'];
	const CLICK_BINDING_ATTRS = ['onclick', 'ng-click', '@click', 'v-on:click', 'data-onclick', 'jsaction'];
	const PALETTE = [
		'#FF5D5D', '#4D96FF', '#6BCB77', '#FFD93D', '#B983FF',
		'#FF9F45', '#3AB0FF', '#F473B9', '#2ec4b6', '#A9907E'
	];

	const warnings = [];
	const viewport = {
		scrollX: Math.round(window.scrollX),
		scrollY: Math.round(window.scrollY),
		width: window.innerWidth,
		height: window.innerHeight
	};

	// Tear down the previous overlay pass.
	const stale = document.getElementById(OVERLAY_ID);
	if (stale) stale.remove();
	document.querySelectorAll('[' + HIGHLIGHT_ATTR + ']').forEach((el) => {
		el.removeAttribute(HIGHLIGHT_ATTR);
	});

	let overlay = null;
	const ensureOverlay = () => {
		if (overlay) return overlay;
		overlay = document.createElement('div');
		overlay.id = OVERLAY_ID;
		overlay.style.position = 'absolute';
		overlay.style.top = '0';
		overlay.style.left = '0';
		overlay.style.width = '0';
		overlay.style.height = '0';
		overlay.style.pointerEvents = 'none';
		overlay.style.zIndex = '2147483640';
		document.body.appendChild(overlay);
		return overlay;
	};

	const paintHighlight = (index, pageBox) => {
		const container = ensureOverlay();
		const color = PALETTE[index % PALETTE.length];

		const box = document.createElement('div');
		box.style.position = 'absolute';
		box.style.left = pageBox.topLeft.x + 'px';
		box.style.top = pageBox.topLeft.y + 'px';
		box.style.width = pageBox.width + 'px';
		box.style.height = pageBox.height + 'px';
		box.style.border = '2px solid ' + color;
		box.style.boxSizing = 'border-box';
		box.style.pointerEvents = 'none';
		container.appendChild(box);

		const label = document.createElement('div');
		label.textContent = String(index);
		label.style.position = 'absolute';
		label.style.left = pageBox.topLeft.x + 'px';
		label.style.top = Math.max(0, pageBox.topLeft.y - 16) + 'px';
		label.style.background = color;
		label.style.color = '#fff';
		label.style.font = '11px/14px monospace';
		label.style.padding = '0 3px';
		label.style.pointerEvents = 'none';
		container.appendChild(label);
	};

	const roundBox = (left, top, width, height) => {
		const l = Math.round(left);
		const t = Math.round(top);
		const w = Math.round(width);
		const h = Math.round(height);
		return {
			topLeft: { x: l, y: t },
			topRight: { x: l + w, y: t },
			bottomLeft: { x: l, y: t + h },
			bottomRight: { x: l + w, y: t + h },
			center: { x: Math.round(left + width / 2), y: Math.round(top + height / 2) },
			width: w,
			height: h
		};
	};

	const xpathFor = (el) => {
		const segments = [];
		let cur = el;
		while (cur && cur.nodeType === Node.ELEMENT_NODE && cur !== document.documentElement) {
			const tag = cur.tagName.toLowerCase();
			let index = 1;
			let sib = cur.previousElementSibling;
			while (sib) {
				if (sib.tagName === cur.tagName) index++;
				sib = sib.previousElementSibling;
			}
			segments.unshift(tag + '[' + index + ']');
			const root = cur.getRootNode();
			if (cur.parentElement) {
				cur = cur.parentElement;
			} else if (root instanceof ShadowRoot) {
				cur = root.host;
			} else {
				cur = null;
			}
		}
		return '/html/' + segments.join('/');
	};

	const isElementVisible = (rect, style) => {
		return rect.width > 0 && rect.height > 0 &&
			style.visibility !== 'hidden' && style.display !== 'none';
	};

	const hasClickAffinity = (el) => {
		// body and its direct children never qualify through this tier.
		if (el === document.body) return false;
		if (el.parentElement === el.ownerDocument.body) return false;

		if (typeof el.onclick === 'function') return true;
		for (const name of CLICK_BINDING_ATTRS) {
			if (el.hasAttribute(name)) return true;
		}
		try {
			// Listener introspection only exists in devtools-backed contexts.
			if (typeof getEventListeners === 'function') {
				const listeners = getEventListeners(el);
				const kinds = ['click', 'dblclick', 'mousedown', 'mouseup', 'touchstart', 'touchend'];
				for (const kind of kinds) {
					if (listeners[kind] && listeners[kind].length > 0) return true;
				}
			} else {
				for (const attr of el.attributes) {
					const n = attr.name.toLowerCase();
					if (n.startsWith('onmouse') || n.startsWith('ontouch') || n === 'onclick' || n === 'ondblclick') {
						return true;
					}
				}
			}
		} catch (e) {
			// introspection failure reduces recall, nothing else
		}
		if (el.draggable || el.getAttribute('draggable') === 'true') return true;
		for (const name of TOGGLE_ARIA_ATTRS) {
			if (el.hasAttribute(name)) return true;
		}
		return false;
	};

	const isInteractive = (el) => {
		const tag = el.tagName.toLowerCase();
		if (INTERACTIVE_TAGS.has(tag)) return true;

		const role = el.getAttribute('role') || el.getAttribute('aria-role');
		if (role && INTERACTIVE_ROLES.has(role.toLowerCase())) return true;

		const tabindex = el.getAttribute('tabindex');
		if (tabindex !== null && tabindex !== '-1' && el.parentElement !== el.ownerDocument.body) {
			return true;
		}

		if (el.classList && el.classList.contains(ADDRESS_AUTOCOMPLETE_CLASS)) return true;

		const action = el.getAttribute('data-action');
		if (action && DROPDOWN_ACTIONS.has(action)) return true;

		if (tag === 'body') return false;
		return hasClickAffinity(el);
	};

	const matchesUpward = (start, target) => {
		let cur = start;
		while (cur) {
			if (cur === target) return true;
			if (cur.parentElement) {
				cur = cur.parentElement;
			} else {
				const root = cur.getRootNode();
				cur = root instanceof ShadowRoot ? root.host : null;
			}
		}
		return false;
	};

	const isTopElement = (el, rect) => {
		// Elements inside iframes are checked against their own document,
		// which hit-testing across frames cannot do reliably.
		if (el.ownerDocument !== document) return true;
		if (viewportExpansion === -1) return true;

		const root = el.getRootNode();
		if (root instanceof ShadowRoot) {
			try {
				const hit = root.elementFromPoint(
					rect.left + rect.width / 2, rect.top + rect.height / 2);
				if (!hit) return true;
				return matchesUpward(hit, el);
			} catch (e) {
				return true;
			}
		}

		try {
			const sx = window.scrollX;
			const sy = window.scrollY;
			const pageTop = rect.top + sy;
			const pageLeft = rect.left + sx;
			const pageBottom = rect.bottom + sy;
			const pageRight = rect.right + sx;
			if (pageBottom < sy - viewportExpansion ||
				pageTop > sy + window.innerHeight + viewportExpansion ||
				pageRight < sx - viewportExpansion ||
				pageLeft > sx + window.innerWidth + viewportExpansion) {
				return false;
			}

			const cx = rect.left + rect.width / 2;
			const cy = rect.top + rect.height / 2;
			// A center outside the visual viewport cannot be hit-tested;
			// accept optimistically.
			if (cx < 0 || cy < 0 || cx >= window.innerWidth || cy >= window.innerHeight) {
				return true;
			}

			const hit = document.elementFromPoint(cx, cy);
			if (!hit) return true;
			return matchesUpward(hit, el);
		} catch (e) {
			return true;
		}
	};

	let highlightCounter = 0;

	const buildText = (textNode, frameOffsetX, frameOffsetY) => {
		const text = textNode.textContent.trim();
		if (!text) return null;

		const parent = textNode.parentElement;
		if (!parent) return null;

		let rect;
		try {
			const range = textNode.ownerDocument.createRange();
			range.selectNodeContents(textNode);
			rect = range.getBoundingClientRect();
		} catch (e) {
			return null;
		}
		if (rect.width === 0 || rect.height === 0) return null;

		const style = textNode.ownerDocument.defaultView.getComputedStyle(parent);
		if (style.visibility === 'hidden' || style.display === 'none') return null;

		return { type: 'text', text: text, isVisible: true };
	};

	// frameOffset places iframe-local coordinates into main-page space.
	const buildElement = (el, frameOffsetX, frameOffsetY) => {
		const tag = el.tagName.toLowerCase();
		if (DENY_TAGS.has(tag)) return null;
		if (el.id === OVERLAY_ID) return null;

		const win = el.ownerDocument.defaultView;
		if (!win) return null;

		const rect = el.getBoundingClientRect();
		const style = win.getComputedStyle(el);

		const viewLeft = rect.left + frameOffsetX;
		const viewTop = rect.top + frameOffsetY;
		const viewportBox = roundBox(viewLeft, viewTop, rect.width, rect.height);
		const pageBox = roundBox(
			viewLeft + window.scrollX, viewTop + window.scrollY,
			rect.width, rect.height);

		const attributes = {};
		for (const attr of el.attributes) {
			attributes[attr.name] = attr.value;
		}

		const interactive = isInteractive(el);
		const visible = isElementVisible(rect, style);
		const top = isTopElement(el, rect);

		const node = {
			type: 'element',
			tagName: tag,
			attributes: attributes,
			xpath: xpathFor(el),
			children: [],
			viewportBox: viewportBox,
			pageBox: pageBox,
			viewport: viewport,
			isInteractive: interactive,
			isVisible: visible,
			isTopElement: top,
			highlightIndex: -1,
			hasShadowRoot: !!el.shadowRoot
		};

		if (interactive && visible && top) {
			node.highlightIndex = highlightCounter++;
			if (highlightEnabled) {
				el.setAttribute(HIGHLIGHT_ATTR, String(node.highlightIndex));
				if (focusIndex < 0 || focusIndex === node.highlightIndex) {
					paintHighlight(node.highlightIndex, pageBox);
				}
			}
		}

		const appendChildren = (parentNode) => {
			for (const child of parentNode.childNodes) {
				if (child.nodeType === Node.TEXT_NODE) {
					const textChild = buildText(child, frameOffsetX, frameOffsetY);
					if (textChild) node.children.push(textChild);
				} else if (child.nodeType === Node.ELEMENT_NODE) {
					const elChild = buildElement(child, frameOffsetX, frameOffsetY);
					if (elChild) node.children.push(elChild);
				}
			}
		};

		appendChildren(el);

		// Shadow-root children hang off the host, same frame context.
		if (el.shadowRoot) {
			appendChildren(el.shadowRoot);
		}

		if (tag === 'iframe') {
			let frameDoc = null;
			try {
				frameDoc = el.contentDocument || (el.contentWindow && el.contentWindow.document);
			} catch (e) {
				frameDoc = null;
			}
			if (frameDoc && frameDoc.body) {
				for (const child of frameDoc.body.childNodes) {
					if (child.nodeType === Node.TEXT_NODE) {
						const textChild = buildText(child, viewLeft, viewTop);
						if (textChild) node.children.push(textChild);
					} else if (child.nodeType === Node.ELEMENT_NODE) {
						const elChild = buildElement(child, viewLeft, viewTop);
						if (elChild) node.children.push(elChild);
					}
				}
			} else {
				warnings.push('iframe content not accessible: ' + (el.src || '(no src)'));
			}
		}

		return node;
	};

	const root = buildElement(document.body, 0, 0);

	return {
		url: window.location.href,
		title: document.title,
		root: root,
		warnings: warnings
	};
}`
