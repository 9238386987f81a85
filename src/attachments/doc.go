// Package attachments turns the two ways a client can send files alongside a
// query into one shape: a structured list of uploads, or inline
// [FILE_UPLOAD:<data>:<name>:<mime>] markers embedded in the query text.
//
// The structured list wins whenever it is non-empty. Otherwise markers are
// extracted from the text and replaced with a short placeholder. Anything that
// cannot be validated is dropped silently; callers only see the filtered list.
package attachments
