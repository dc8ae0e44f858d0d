// Package parse decodes hand-written JSON leniently. Workflow files are
// edited by people, so trailing commas, comments, single quotes, unquoted
// keys and Markdown code fences are repaired before decoding.
package parse
