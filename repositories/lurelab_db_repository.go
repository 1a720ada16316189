package repositories

// LurelabDbRepository groups the query methods against the lurelab database.
// Methods are spread over the per-concern files of this package.
type LurelabDbRepository struct{}

func NewLurelabDbRepository() *LurelabDbRepository {
	return &LurelabDbRepository{}
}
