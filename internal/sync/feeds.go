package sync

import (
	"context"

	authsvc "agency_portal/internal/api/auth/service"
	portaldto "agency_portal/internal/api/portal/dto"
	portalmodels "agency_portal/internal/api/portal/models"
	portalsvc "agency_portal/internal/api/portal/service"
	"agency_portal/internal/global"
)

// Tên các slice trong state store nhận snapshot từ adapter.
const (
	SliceLeads    = "leads"
	SliceProjects = "projects"
	SliceTickets  = "tickets"
	SliceMessages = "messages"
	SliceActivity = "activity"
	SliceArchived = "archived"
	SliceClients  = "clients"
)

// Feeds gom các subscription dựng sẵn của portal.
type Feeds struct {
	adapter  *Adapter
	leads    *portalsvc.LeadService
	projects *portalsvc.ProjectService
	tickets  *portalsvc.TicketService
	chat     *portalsvc.ChatService
	activity *portalsvc.ActivityService
	archive  *portalsvc.ArchiveService
	users    *authsvc.UserService
}

// NewFeeds tạo bộ subscription dựng sẵn.
func NewFeeds(
	adapter *Adapter,
	leads *portalsvc.LeadService,
	projects *portalsvc.ProjectService,
	tickets *portalsvc.TicketService,
	chat *portalsvc.ChatService,
	activity *portalsvc.ActivityService,
	archive *portalsvc.ArchiveService,
	users *authsvc.UserService,
) *Feeds {
	return &Feeds{
		adapter:  adapter,
		leads:    leads,
		projects: projects,
		tickets:  tickets,
		chat:     chat,
		activity: activity,
		archive:  archive,
		users:    users,
	}
}

// SubscribeAdmin đăng ký các feed cho phiên nhân sự nội bộ: toàn bộ lead,
// project, ticket, activity, bản ghi lưu trữ và danh sách client.
func (f *Feeds) SubscribeAdmin(ctx context.Context) error {
	subs := []Subscription{
		{
			Key:         "admin:leads",
			SliceName:   SliceLeads,
			Collections: []string{global.ColNames.Leads},
			Query: func(ctx context.Context) (interface{}, error) {
				return f.leads.ListLeads(ctx, "")
			},
		},
		{
			Key:         "admin:projects",
			SliceName:   SliceProjects,
			Collections: []string{global.ColNames.Projects},
			Query: func(ctx context.Context) (interface{}, error) {
				return f.projects.ListProjects(ctx, "")
			},
		},
		{
			Key:         "admin:tickets",
			SliceName:   SliceTickets,
			Collections: []string{global.ColNames.Tickets},
			Query: func(ctx context.Context) (interface{}, error) {
				return f.tickets.ListAll(ctx)
			},
			// Sort phía server lỗi thì lấy không sort rồi sắp xếp phía client
			Fallback: func(ctx context.Context) (interface{}, error) {
				all, err := f.tickets.Find(ctx, nil, nil)
				if err != nil {
					return nil, err
				}
				SortTicketsNewestFirst(all)
				return all, nil
			},
		},
		{
			Key:         "admin:activity",
			SliceName:   SliceActivity,
			Collections: []string{global.ColNames.Activity},
			Query: func(ctx context.Context) (interface{}, error) {
				return f.activity.ListRecent(ctx, 50)
			},
		},
		{
			Key:         "admin:archived",
			SliceName:   SliceArchived,
			Collections: []string{global.ColNames.Archived},
			Query: func(ctx context.Context) (interface{}, error) {
				return f.archive.ListArchived(ctx, &portaldto.ListArchivedQuery{})
			},
		},
		{
			Key:         "admin:clients",
			SliceName:   SliceClients,
			Collections: []string{global.ColNames.Users},
			Query: func(ctx context.Context) (interface{}, error) {
				return f.users.ListClients(ctx)
			},
		},
	}

	for _, sub := range subs {
		if err := f.adapter.Subscribe(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}

// SubscribeClient đăng ký các feed cho phiên client: project được gán
// và ticket của chính client đó.
func (f *Feeds) SubscribeClient(ctx context.Context, clientUID string) error {
	subs := []Subscription{
		{
			Key:         "client:" + clientUID + ":projects",
			SliceName:   SliceProjects,
			Collections: []string{global.ColNames.Projects},
			Query: func(ctx context.Context) (interface{}, error) {
				return f.projects.ListProjectsForClient(ctx, clientUID)
			},
		},
		{
			Key: "client:" + clientUID + ":tickets",
			SliceName: SliceTickets,
			// Ticket đổi khi ticket thay đổi, nhưng danh sách project được
			// gán đổi cũng đổi nguồn truy vấn thứ ba
			Collections: []string{global.ColNames.Tickets, global.ColNames.Projects},
			Query: func(ctx context.Context) (interface{}, error) {
				return f.clientTickets(ctx, clientUID)
			},
		},
	}

	for _, sub := range subs {
		if err := f.adapter.Subscribe(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}

// SubscribeProjectChat đăng ký feed tin nhắn của một dự án.
func (f *Feeds) SubscribeProjectChat(ctx context.Context, projectID string) error {
	return f.adapter.Subscribe(ctx, Subscription{
		Key:         "chat:" + projectID,
		SliceName:   SliceMessages + ":" + projectID,
		Collections: []string{global.ColNames.Messages},
		Query: func(ctx context.Context) (interface{}, error) {
			return f.chat.ListMessages(ctx, &portaldto.ListMessagesQuery{ProjectID: projectID})
		},
	})
}

// clientTickets gộp ticket của một client từ ba nguồn: clientId khớp UID,
// trường cũ submittedById, và ticket thuộc các project client được gán.
func (f *Feeds) clientTickets(ctx context.Context, clientUID string) ([]portalmodels.Ticket, error) {
	own, err := f.tickets.FindByClientID(ctx, clientUID)
	if err != nil {
		return nil, err
	}
	legacy, err := f.tickets.FindByLegacySubmitter(ctx, clientUID)
	if err != nil {
		return nil, err
	}

	projects, err := f.projects.ListProjectsForClient(ctx, clientUID)
	if err != nil {
		return nil, err
	}
	projectIDs := make([]string, 0, len(projects))
	for _, p := range projects {
		projectIDs = append(projectIDs, p.ID.Hex())
	}
	byProject, err := f.tickets.FindByProjectIDs(ctx, projectIDs)
	if err != nil {
		return nil, err
	}

	return MergeTickets(own, legacy, byProject), nil
}
