package core

import (
	"sort"
	"time"

	"pkt.systems/jirasoap/schema"
)

const firstID int64 = 10000

// state is everything the tracker persists. Records reference each other by
// numeric id so the whole graph serializes as plain JSON.
type state struct {
	NextID              int64                             `json:"next_id"`
	Groups              map[string]*groupRecord           `json:"groups"`
	Projects            map[int64]*projectRecord          `json:"projects"`
	Issues              map[int64]*issueRecord            `json:"issues"`
	Comments            map[int64]*commentRecord          `json:"comments"`
	Worklogs            map[int64]*worklogRecord          `json:"worklogs"`
	Attachments         map[int64]*attachmentRecord       `json:"attachments"`
	PermissionSchemes   map[int64]*permissionSchemeRecord `json:"permission_schemes"`
	NotificationSchemes []schema.RemoteScheme             `json:"notification_schemes"`
	SecuritySchemes     map[int64]*securitySchemeRecord   `json:"security_schemes"`
	Roles               map[int64]*roleRecord             `json:"roles"`
	Avatars             map[int64]*avatarRecord           `json:"avatars"`
	CustomFields        []schema.RemoteField              `json:"custom_fields,omitempty"`
}

type groupRecord struct {
	Name    string   `json:"name"`
	Members []string `json:"members,omitempty"`
}

type projectRecord struct {
	ID                   int64                    `json:"id"`
	Key                  string                   `json:"key"`
	Name                 string                   `json:"name"`
	Description          string                   `json:"description,omitempty"`
	URL                  string                   `json:"url,omitempty"`
	Lead                 string                   `json:"lead"`
	PermissionSchemeID   int64                    `json:"permission_scheme_id"`
	NotificationSchemeID int64                    `json:"notification_scheme_id"`
	SecuritySchemeID     int64                    `json:"security_scheme_id,omitempty"`
	AvatarID             int64                    `json:"avatar_id,omitempty"`
	Counter              int64                    `json:"counter"`
	Components           []schema.RemoteComponent `json:"components,omitempty"`
	Versions             []schema.RemoteVersion   `json:"versions,omitempty"`
}

type issueRecord struct {
	ID              int64                           `json:"id"`
	Key             string                          `json:"key"`
	ProjectID       int64                           `json:"project_id"`
	Type            string                          `json:"type"`
	Summary         string                          `json:"summary"`
	Description     string                          `json:"description,omitempty"`
	Environment     string                          `json:"environment,omitempty"`
	Assignee        string                          `json:"assignee,omitempty"`
	Reporter        string                          `json:"reporter"`
	Priority        string                          `json:"priority"`
	Status          string                          `json:"status"`
	Resolution      string                          `json:"resolution,omitempty"`
	Created         time.Time                       `json:"created"`
	Updated         time.Time                       `json:"updated"`
	Duedate         *time.Time                      `json:"duedate,omitempty"`
	Resolved        *time.Time                      `json:"resolved,omitempty"`
	Votes           int64                           `json:"votes"`
	Components      []string                        `json:"components,omitempty"`
	AffectsVersions []string                        `json:"affects_versions,omitempty"`
	FixVersions     []string                        `json:"fix_versions,omitempty"`
	CustomFields    []schema.RemoteCustomFieldValue `json:"custom_fields,omitempty"`
	SecurityLevelID int64                           `json:"security_level_id,omitempty"`
	Estimate        *int64                          `json:"estimate,omitempty"`
	TimeSpent       int64                           `json:"time_spent"`
}

type commentRecord struct {
	ID           int64     `json:"id"`
	IssueID      int64     `json:"issue_id"`
	Author       string    `json:"author"`
	Body         string    `json:"body"`
	GroupLevel   string    `json:"group_level,omitempty"`
	RoleLevel    string    `json:"role_level,omitempty"`
	UpdateAuthor string    `json:"update_author"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

type worklogRecord struct {
	ID           int64     `json:"id"`
	IssueID      int64     `json:"issue_id"`
	Author       string    `json:"author"`
	Comment      string    `json:"comment,omitempty"`
	GroupLevel   string    `json:"group_level,omitempty"`
	RoleLevelID  string    `json:"role_level_id,omitempty"`
	StartDate    time.Time `json:"start_date"`
	Seconds      int64     `json:"seconds"`
	UpdateAuthor string    `json:"update_author"`
	Created      time.Time `json:"created"`
	Updated      time.Time `json:"updated"`
}

type attachmentRecord struct {
	ID       int64     `json:"id"`
	IssueID  int64     `json:"issue_id"`
	Author   string    `json:"author"`
	Filename string    `json:"filename"`
	Mimetype string    `json:"mimetype"`
	Size     int64     `json:"size"`
	Created  time.Time `json:"created"`
}

type grantRecord struct {
	Permission int64               `json:"permission"`
	Entity     schema.RemoteEntity `json:"entity"`
}

type permissionSchemeRecord struct {
	ID          int64         `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Grants      []grantRecord `json:"grants,omitempty"`
}

type securityLevelRecord struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Group       string `json:"group"`
}

type securitySchemeRecord struct {
	ID          int64                 `json:"id"`
	Name        string                `json:"name"`
	Description string                `json:"description,omitempty"`
	Levels      []securityLevelRecord `json:"levels"`
}

type actorRecord struct {
	Type      string `json:"type"`
	Parameter string `json:"parameter"`
}

type roleRecord struct {
	ID            int64                   `json:"id"`
	Name          string                  `json:"name"`
	Description   string                  `json:"description,omitempty"`
	Defaults      []actorRecord           `json:"defaults,omitempty"`
	ProjectActors map[int64][]actorRecord `json:"project_actors,omitempty"`
}

type avatarRecord struct {
	ID          int64  `json:"id"`
	ProjectID   int64  `json:"project_id,omitempty"`
	ContentType string `json:"content_type"`
	System      bool   `json:"system"`
	Data        []byte `json:"data"`
}

func newState() *state {
	return &state{
		NextID:            firstID,
		Groups:            make(map[string]*groupRecord),
		Projects:          make(map[int64]*projectRecord),
		Issues:            make(map[int64]*issueRecord),
		Comments:          make(map[int64]*commentRecord),
		Worklogs:          make(map[int64]*worklogRecord),
		Attachments:       make(map[int64]*attachmentRecord),
		PermissionSchemes: make(map[int64]*permissionSchemeRecord),
		SecuritySchemes:   make(map[int64]*securitySchemeRecord),
		Roles:             make(map[int64]*roleRecord),
		Avatars:           make(map[int64]*avatarRecord),
	}
}

// ensureMaps replaces nil maps left behind by a decoded snapshot.
func (s *state) ensureMaps() {
	if s.NextID < firstID {
		s.NextID = firstID
	}
	if s.Groups == nil {
		s.Groups = make(map[string]*groupRecord)
	}
	if s.Projects == nil {
		s.Projects = make(map[int64]*projectRecord)
	}
	if s.Issues == nil {
		s.Issues = make(map[int64]*issueRecord)
	}
	if s.Comments == nil {
		s.Comments = make(map[int64]*commentRecord)
	}
	if s.Worklogs == nil {
		s.Worklogs = make(map[int64]*worklogRecord)
	}
	if s.Attachments == nil {
		s.Attachments = make(map[int64]*attachmentRecord)
	}
	if s.PermissionSchemes == nil {
		s.PermissionSchemes = make(map[int64]*permissionSchemeRecord)
	}
	if s.SecuritySchemes == nil {
		s.SecuritySchemes = make(map[int64]*securitySchemeRecord)
	}
	if s.Roles == nil {
		s.Roles = make(map[int64]*roleRecord)
	}
	if s.Avatars == nil {
		s.Avatars = make(map[int64]*avatarRecord)
	}
}

func (s *state) nextID() int64 {
	id := s.NextID
	s.NextID++
	return id
}

func (s *state) projectByKey(key string) *projectRecord {
	for _, project := range s.Projects {
		if project.Key == key {
			return project
		}
	}
	return nil
}

func (s *state) issueByKey(key string) *issueRecord {
	for _, issue := range s.Issues {
		if issue.Key == key {
			return issue
		}
	}
	return nil
}

func (s *state) sortedProjects() []*projectRecord {
	out := make([]*projectRecord, 0, len(s.Projects))
	for _, project := range s.Projects {
		out = append(out, project)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (s *state) sortedIssues() []*issueRecord {
	out := make([]*issueRecord, 0, len(s.Issues))
	for _, issue := range s.Issues {
		out = append(out, issue)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *state) issueComments(issueID int64) []*commentRecord {
	var out []*commentRecord
	for _, comment := range s.Comments {
		if comment.IssueID == issueID {
			out = append(out, comment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *state) issueWorklogs(issueID int64) []*worklogRecord {
	var out []*worklogRecord
	for _, worklog := range s.Worklogs {
		if worklog.IssueID == issueID {
			out = append(out, worklog)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *state) issueAttachments(issueID int64) []*attachmentRecord {
	var out []*attachmentRecord
	for _, attachment := range s.Attachments {
		if attachment.IssueID == issueID {
			out = append(out, attachment)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *state) sortedRoles() []*roleRecord {
	out := make([]*roleRecord, 0, len(s.Roles))
	for _, role := range s.Roles {
		out = append(out, role)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (s *state) securityLevel(id int64) (*securityLevelRecord, *securitySchemeRecord) {
	for _, scheme := range s.SecuritySchemes {
		for i := range scheme.Levels {
			if scheme.Levels[i].ID == id {
				return &scheme.Levels[i], scheme
			}
		}
	}
	return nil, nil
}
