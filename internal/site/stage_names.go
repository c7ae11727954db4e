package site

// StageName is a strongly-typed identifier for a build stage. All canonical
// stages are declared as constants here.
type StageName string

// Canonical stage names, in execution order.
const (
	StagePrepareOutput StageName = "prepare_output"
	StageLoadTemplates StageName = "load_templates"
	StageCopyAssets    StageName = "copy_assets"
	StageScanContent   StageName = "scan_content"
	StageCollect       StageName = "collect_metadata"
	StageValidate      StageName = "validate_metadata"
	StageHierarchy     StageName = "build_hierarchy"
	StageAggregate     StageName = "aggregate_indexes"
	StageRender        StageName = "render_pages"
	StageListings      StageName = "generate_listings"
	StageArtifacts     StageName = "write_artifacts"
	StageLinkCheck     StageName = "check_links"
)

// StageDef pairs a stage name with its executing function.
type StageDef struct {
	Name StageName
	Fn   Stage
}
