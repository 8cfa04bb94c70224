package core

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sort"

	"pkt.systems/jirasoap/schema"
)

const (
	notificationSchemeType = "notification"
	securitySchemeType     = "issuesecurity"
	permissionSchemeType   = "permission"
	avatarContentType      = "image/png"
	avatarSize             = 48
)

var usersGroupGrants = []int64{
	PermBrowse,
	PermCreateIssue,
	PermEditIssue,
	PermAssignIssue,
	PermAssignableUser,
	PermResolveIssue,
	PermCloseIssue,
	PermCommentIssue,
	PermCreateAttachment,
	PermWorkIssue,
	PermLinkIssue,
	PermScheduleIssue,
	PermCommentEditOwn,
	PermWorklogEditOwn,
	PermWorklogDeleteOwn,
}

var adminGroupGrants = []int64{
	PermProjectAdmin,
	PermDeleteIssue,
	PermMoveIssue,
	PermModifyReporter,
	PermSetIssueSecurity,
	PermCommentEditAll,
	PermWorklogEditAll,
	PermWorklogDeleteAll,
}

var systemAvatarColors = []color.RGBA{
	{R: 0x35, G: 0x72, B: 0xb0, A: 0xff},
	{R: 0x14, G: 0x89, B: 0x2c, A: 0xff},
	{R: 0xd0, G: 0x44, B: 0x37, A: 0xff},
	{R: 0xf6, G: 0xc3, B: 0x42, A: 0xff},
}

// seed builds the initial state: groups, the default schemes, the default
// project roles, the system avatars and the configured custom fields.
func (t *Tracker) seed() *state {
	st := newState()

	admins := append([]string(nil), t.cfg.Administrators...)
	sort.Strings(admins)
	st.Groups[t.cfg.AdminGroup] = &groupRecord{Name: t.cfg.AdminGroup, Members: admins}
	st.Groups[DefaultDevelopersGroup] = &groupRecord{Name: DefaultDevelopersGroup}

	defaults := &permissionSchemeRecord{
		ID:          defaultPermissionSchemeID,
		Name:        "Default Permission Scheme",
		Description: "This is the default Permission Scheme. Any new projects that are created will be assigned this scheme.",
	}
	for _, perm := range usersGroupGrants {
		defaults.Grants = append(defaults.Grants, grantRecord{Permission: perm, Entity: groupEntity(t.cfg.UsersGroup)})
	}
	for _, perm := range adminGroupGrants {
		defaults.Grants = append(defaults.Grants, grantRecord{Permission: perm, Entity: groupEntity(t.cfg.AdminGroup)})
	}
	st.PermissionSchemes[defaults.ID] = defaults

	st.NotificationSchemes = []schema.RemoteScheme{{
		ID:          st.nextID(),
		Name:        "Default Notification Scheme",
		Description: "Notifies reporter, assignee and watchers of every issue event.",
		Type:        notificationSchemeType,
	}}

	security := &securitySchemeRecord{
		ID:          st.nextID(),
		Name:        "Default Issue Security Scheme",
		Description: "Restricts issue visibility to developers or administrators.",
	}
	security.Levels = []securityLevelRecord{
		{ID: st.nextID(), Name: "Developers", Description: "Visible to the developers group.", Group: DefaultDevelopersGroup},
		{ID: st.nextID(), Name: "Administrators", Description: "Visible to administrators only.", Group: t.cfg.AdminGroup},
	}
	st.SecuritySchemes[security.ID] = security

	for _, role := range []struct {
		name, description, group string
	}{
		{"Users", "A project role that represents users in a project", t.cfg.UsersGroup},
		{"Developers", "A project role that represents developers in a project", DefaultDevelopersGroup},
		{"Administrators", "A project role that represents administrators in a project", t.cfg.AdminGroup},
	} {
		id := st.nextID()
		st.Roles[id] = &roleRecord{
			ID:          id,
			Name:        role.name,
			Description: role.description,
			Defaults:    []actorRecord{{Type: groupRoleActorType, Parameter: role.group}},
		}
	}

	for _, c := range systemAvatarColors {
		id := st.nextID()
		st.Avatars[id] = &avatarRecord{
			ID:          id,
			ContentType: avatarContentType,
			System:      true,
			Data:        solidPNG(c),
		}
	}

	for _, field := range t.cfg.CustomFields {
		st.CustomFields = append(st.CustomFields, schema.RemoteField{ID: field.ID, Name: field.Name})
	}
	return st
}

func groupEntity(name string) schema.RemoteEntity {
	return schema.RemoteEntity{Kind: schema.EntityGroup, Name: name}
}

func solidPNG(c color.RGBA) []byte {
	img := image.NewRGBA(image.Rect(0, 0, avatarSize, avatarSize))
	for y := 0; y < avatarSize; y++ {
		for x := 0; x < avatarSize; x++ {
			img.SetRGBA(x, y, c)
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil
	}
	return buf.Bytes()
}
