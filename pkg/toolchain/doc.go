// Package toolchain manages the Node.js toolchain of the web/ tree.
//
// Initialize locates node and npm, then brings each configured installer up
// to date through an install gate: npm dependencies from web/package.json
// and, when web/bower.json exists, bower components. The returned Toolchain
// runs node, npm, bower and gulp with the checkout's own scripts.
package toolchain
