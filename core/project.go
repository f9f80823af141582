package core

const DefaultProjectName = "Untitled Project"

type DBProject interface {
	ID() string
	Name() string
	Description() string // markdown
	TsCreated() int64
	TsChanged() int64
}

type ProjectDB interface {
	DeleteProject(p DBProject) error
	GetProject(id string) (DBProject, error)
	GetProjects() ([]DBProject, error)
	InsertProject(id, name string) error
	IsProjectNotFound(err error) bool
	SetProjectDescription(p DBProject, description string) error
	SetProjectName(p DBProject, name string) error
}

// ProjectInfo is a project plus the number of its boards which are
// visible to the caller. Projects themselves have no shared flag, a
// guest sees every project but only its shared boards.
type ProjectInfo struct {
	DBProject
	BoardCount int
}

// OpenProject fetches a project by id. Projects are visible to every role.
func (c *CoreDB) OpenProject(id string) (DBProject, error) {
	project, err := c.ProjectDB.GetProject(id)
	if err != nil {
		if c.ProjectDB.IsProjectNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return project, nil
}

// ProjectsFor lists all projects with board counts as the role sees them.
func (c *CoreDB) ProjectsFor(role Role) ([]ProjectInfo, error) {
	projects, err := c.GetProjects()
	if err != nil {
		return nil, err
	}
	var infos = make([]ProjectInfo, 0, len(projects))
	for _, project := range projects {
		count, err := c.CountProjectBoards(project.ID(), sharedOnly(role))
		if err != nil {
			return nil, err
		}
		infos = append(infos, ProjectInfo{project, count})
	}
	return infos, nil
}
