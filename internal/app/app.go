// Package app gom toàn bộ phụ thuộc runtime của portal vào một context
// tường minh: state store, sync adapter, cache, notifier, Firebase và các
// service nghiệp vụ. Mọi handler nhận *App thay vì với tay vào biến toàn cục.
package app

import (
	"context"
	"fmt"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	authmodels "agency_portal/internal/api/auth/models"
	authsvc "agency_portal/internal/api/auth/service"
	portalsvc "agency_portal/internal/api/portal/service"
	"agency_portal/config"
	"agency_portal/internal/cache"
	"agency_portal/internal/logger"
	"agency_portal/internal/notify"
	"agency_portal/internal/state"
	"agency_portal/internal/storage"
	appsync "agency_portal/internal/sync"
)

// App là context ứng dụng của portal.
type App struct {
	Config *config.Configuration

	Store    *state.Store
	Adapter  *appsync.Adapter
	Feeds    *appsync.Feeds
	Cache    *cache.FileCache
	Notifier *notify.Notifier

	FirebaseAuth *fbauth.Client
	Storage      *storage.Client

	Users    *authsvc.UserService
	Leads    *portalsvc.LeadService
	Projects *portalsvc.ProjectService
	Tickets  *portalsvc.TicketService
	Chat     *portalsvc.ChatService
	Activity *portalsvc.ActivityService
	Archive  *portalsvc.ArchiveService
}

// New dựng App từ config và Firebase client. Các collection phải được
// đăng ký vào registry trước khi gọi.
func New(cfg *config.Configuration, firebaseAuth *fbauth.Client, storageClient *storage.Client) (*App, error) {
	store := state.NewStore(map[string]interface{}{
		appsync.SliceLeads:    nil,
		appsync.SliceProjects: nil,
		appsync.SliceTickets:  nil,
		appsync.SliceActivity: nil,
		appsync.SliceArchived: nil,
		appsync.SliceClients:  nil,
		notify.SliceName:      []notify.Toast{},
	})
	notifier := notify.NewNotifier(store, notify.DefaultDismissAfter)
	adapter := appsync.NewAdapter(store)

	fileCache, err := cache.NewFileCache(cfg.CacheDir)
	if err != nil {
		return nil, fmt.Errorf("không khởi tạo được cache: %w", err)
	}

	activity, err := portalsvc.NewActivityService()
	if err != nil {
		return nil, err
	}
	projects, err := portalsvc.NewProjectService(activity, notifier)
	if err != nil {
		return nil, err
	}
	leads, err := portalsvc.NewLeadService(projects, activity, notifier)
	if err != nil {
		return nil, err
	}
	tickets, err := portalsvc.NewTicketService(activity, notifier)
	if err != nil {
		return nil, err
	}
	chat, err := portalsvc.NewChatService()
	if err != nil {
		return nil, err
	}
	archive, err := portalsvc.NewArchiveService(leads, projects, activity, notifier)
	if err != nil {
		return nil, err
	}
	verifier, err := authsvc.NewPasswordVerifier(context.Background(), cfg.FirebaseWebAPIKey)
	if err != nil {
		return nil, fmt.Errorf("không khởi tạo được verifier mật khẩu: %w", err)
	}
	users, err := authsvc.NewUserService(firebaseAuth, notifier, fileCache, verifier)
	if err != nil {
		return nil, err
	}

	feeds := appsync.NewFeeds(adapter, leads, projects, tickets, chat, activity, archive, users)

	return &App{
		Config:       cfg,
		Store:        store,
		Adapter:      adapter,
		Feeds:        feeds,
		Cache:        fileCache,
		Notifier:     notifier,
		FirebaseAuth: firebaseAuth,
		Storage:      storageClient,
		Users:        users,
		Leads:        leads,
		Projects:     projects,
		Tickets:      tickets,
		Chat:         chat,
		Activity:     activity,
		Archive:      archive,
	}, nil
}

// OpenSession đăng ký các feed theo vai trò của phiên đăng nhập.
func (a *App) OpenSession(ctx context.Context, uid, role string) error {
	if authmodels.IsStaffRole(role) {
		return a.Feeds.SubscribeAdmin(ctx)
	}
	return a.Feeds.SubscribeClient(ctx, uid)
}

// CloseSession đóng phiên: gỡ toàn bộ subscription TRƯỚC rồi mới thu hồi
// refresh token, để không còn truy vấn nào chạy bằng phiên vừa bị thu hồi.
func (a *App) CloseSession(ctx context.Context, uid string) error {
	a.Adapter.Teardown()
	a.Store.Reset()

	revokeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := a.Users.RevokeSessions(revokeCtx, uid); err != nil {
		logger.GetErrorLogger().Errorf("Thu hồi phiên của %s thất bại: %v", uid, err)
		return err
	}
	return nil
}
