// Package storage provides the object storage client used for the upload
// archive.
//
// Every spreadsheet accepted by the ingestion endpoints is archived under
// uploads/<dialect>/, and preview artifacts can be stashed under previews/.
// Archiving is best-effort: a storage failure is logged and never fails the
// ingestion itself.
//
// The Client interface abstracts the Minio SDK so feature tests can use the
// testify mock in the mocks subpackage.
package storage
