// Package scan loads Go packages, finds //record:generate directives and
// turns annotated types into source descriptors and generation requests.
package scan
