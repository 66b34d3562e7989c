// Package authsvc - Service tài khoản và hồ sơ người dùng.
// Thông tin đăng nhập do Firebase Auth quản lý; hồ sơ và vai trò nằm trong MongoDB.
package authsvc

import (
	"context"
	"errors"
	"fmt"
	"time"

	fbauth "firebase.google.com/go/v4/auth"

	authdto "agency_portal/internal/api/auth/dto"
	authmodels "agency_portal/internal/api/auth/models"
	basesvc "agency_portal/internal/api/base/service"
	"agency_portal/internal/cache"
	"agency_portal/internal/common"
	"agency_portal/internal/global"
	"agency_portal/internal/logger"
	"agency_portal/internal/notify"
	"agency_portal/internal/utility"

	"go.mongodb.org/mongo-driver/bson"
	mongoopts "go.mongodb.org/mongo-driver/mongo/options"
)

// profileCacheTTL là thời gian cache hồ sơ người dùng. Hồ sơ được đọc mỗi
// request qua auth middleware; đổi role có hiệu lực chậm nhất sau TTL này.
const profileCacheTTL = 30 * time.Second

// UserService xử lý tài khoản client và hồ sơ người dùng.
type UserService struct {
	*basesvc.BaseServiceMongoImpl[authmodels.User]
	firebaseAuth *fbauth.Client
	notifier     *notify.Notifier
	profiles     *cache.FileCache
	verifier     *PasswordVerifier
}

// NewUserService tạo UserService mới. profiles có thể nil (không cache hồ sơ);
// verifier nil thì đổi mật khẩu bị từ chối vì không xác thực lại được.
func NewUserService(firebaseAuth *fbauth.Client, notifier *notify.Notifier, profiles *cache.FileCache, verifier *PasswordVerifier) (*UserService, error) {
	coll, exist := global.RegistryCollections.Get(global.ColNames.Users)
	if !exist {
		return nil, fmt.Errorf("không tìm thấy collection %s: %w", global.ColNames.Users, common.ErrNotFound)
	}
	return &UserService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[authmodels.User](coll),
		firebaseAuth:         firebaseAuth,
		notifier:             notifier,
		profiles:             profiles,
		verifier:             verifier,
	}, nil
}

// profileCacheKey trả về key cache hồ sơ cho uid.
func profileCacheKey(uid string) string {
	return "profile_" + uid
}

// invalidateProfile xóa hồ sơ khỏi cache sau khi ghi.
func (s *UserService) invalidateProfile(uid string) {
	if s.profiles != nil {
		s.profiles.Delete(profileCacheKey(uid))
	}
}

// CreateClient tạo tài khoản client mới: tài khoản Firebase Auth trước,
// hồ sơ MongoDB sau. Chỉ admin được gọi.
func (s *UserService) CreateClient(ctx context.Context, actor *authmodels.User, input *authdto.CreateClientInput) (*authdto.CreateClientResult, error) {
	var result authdto.CreateClientResult
	err := s.runWithToast("Đang tạo tài khoản...", "Đã tạo tài khoản client", func() error {
		if actor == nil || actor.Role != authmodels.RoleAdmin {
			return common.ErrPermissionDenied
		}
		if err := global.ValidateStruct(input); err != nil {
			return err
		}

		params := (&fbauth.UserToCreate{}).
			Email(input.Email).
			Password(input.Password).
			DisplayName(input.DisplayName)
		created, err := s.firebaseAuth.CreateUser(ctx, params)
		if err != nil {
			if fbauth.IsEmailAlreadyExists(err) {
				return common.NewError(common.ErrCodeValidationInput,
					"Email đã được sử dụng", common.StatusConflict, input.Email)
			}
			return common.NewError(common.ErrCodeAuthCredentials,
				"Không tạo được tài khoản", common.StatusInternalServerError, err.Error())
		}

		doc := authmodels.User{
			UID:         created.UID,
			Email:       input.Email,
			DisplayName: utility.SanitizeText(input.DisplayName),
			Role:        authmodels.RoleClient,
			Company:     utility.SanitizeText(input.Company),
		}
		profile, err := s.InsertOne(ctx, doc)
		if err != nil {
			// Tài khoản Firebase đã tạo nhưng hồ sơ chưa ghi được: dọn lại
			// để admin có thể tạo lại từ đầu.
			if delErr := s.firebaseAuth.DeleteUser(ctx, created.UID); delErr != nil {
				logger.GetErrorLogger().Errorf("Không dọn được tài khoản Firebase %s sau lỗi ghi hồ sơ: %v", created.UID, delErr)
			}
			return err
		}

		s.invalidateProfile(profile.UID)
		result = authdto.CreateClientResult{
			UID:         profile.UID,
			Email:       profile.Email,
			DisplayName: profile.DisplayName,
			Role:        profile.Role,
			Company:     profile.Company,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// FindByUID trả về hồ sơ theo Firebase UID.
func (s *UserService) FindByUID(ctx context.Context, uid string) (*authmodels.User, error) {
	user, err := s.FindOne(ctx, bson.M{"uid": uid}, nil)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetOrCreateProfile trả về hồ sơ theo UID, tạo mới với role mặc định
// nếu chưa có (lần đăng nhập đầu của tài khoản tạo ngoài luồng).
// Hồ sơ được cache profileCacheTTL vì middleware gọi mỗi request.
func (s *UserService) GetOrCreateProfile(ctx context.Context, uid, email, displayName string) (*authmodels.User, error) {
	if s.profiles != nil {
		user, err := cache.CachedFetch(s.profiles, profileCacheKey(uid), profileCacheTTL, func() (authmodels.User, error) {
			u, err := s.getOrCreateProfile(ctx, uid, email, displayName)
			if err != nil {
				return authmodels.User{}, err
			}
			return *u, nil
		})
		if err != nil {
			return nil, err
		}
		return &user, nil
	}
	return s.getOrCreateProfile(ctx, uid, email, displayName)
}

func (s *UserService) getOrCreateProfile(ctx context.Context, uid, email, displayName string) (*authmodels.User, error) {
	user, err := s.FindByUID(ctx, uid)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}

	doc := authmodels.User{
		UID:         uid,
		Email:       email,
		DisplayName: utility.SanitizeText(displayName),
	}
	created, err := s.InsertOne(ctx, doc)
	if err != nil {
		// Chạy song song có thể đã tạo trước: đọc lại theo UID
		if existing, findErr := s.FindByUID(ctx, uid); findErr == nil {
			return existing, nil
		}
		return nil, err
	}
	return &created, nil
}

// UpdateProfile cập nhật hồ sơ của chính người gọi.
func (s *UserService) UpdateProfile(ctx context.Context, actor *authmodels.User, input *authdto.UpdateProfileInput) (*authmodels.User, error) {
	var updated authmodels.User
	err := s.runWithToast("Đang lưu hồ sơ...", "Đã lưu hồ sơ", func() error {
		if actor == nil || actor.UID == "" {
			return common.ErrPermissionDenied
		}
		if err := global.ValidateStruct(input); err != nil {
			return err
		}

		set := map[string]interface{}{}
		if input.DisplayName != "" {
			set["displayName"] = utility.SanitizeText(input.DisplayName)
		}
		if input.Company != "" {
			set["company"] = utility.SanitizeText(input.Company)
		}
		if len(set) == 0 {
			return common.ErrInvalidInput
		}

		out, err := s.UpdateOne(ctx, bson.M{"uid": actor.UID}, &basesvc.UpdateData{Set: set}, nil)
		if err != nil {
			return err
		}
		updated = out
		s.invalidateProfile(actor.UID)

		if displayName, ok := set["displayName"].(string); ok {
			params := (&fbauth.UserToUpdate{}).DisplayName(displayName)
			if _, err := s.firebaseAuth.UpdateUser(ctx, actor.UID, params); err != nil {
				logger.GetErrorLogger().Warnf("Không đồng bộ được displayName sang Firebase cho %s: %v", actor.UID, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// ChangePassword đổi mật khẩu của chính người gọi qua Firebase Auth.
// Phải xác thực lại mật khẩu hiện tại trước khi cập nhật mật khẩu mới.
func (s *UserService) ChangePassword(ctx context.Context, actor *authmodels.User, input *authdto.ChangePasswordInput) error {
	return s.runWithToast("Đang đổi mật khẩu...", "Đã đổi mật khẩu", func() error {
		if actor == nil || actor.UID == "" {
			return common.ErrPermissionDenied
		}
		if err := global.ValidateStruct(input); err != nil {
			return err
		}

		if s.verifier == nil {
			return common.NewError(common.ErrCodeAuthCredentials,
				"Chưa cấu hình xác thực lại mật khẩu", common.StatusInternalServerError, nil)
		}
		if err := s.verifier.Verify(ctx, actor.Email, input.CurrentPassword); err != nil {
			return err
		}

		params := (&fbauth.UserToUpdate{}).Password(input.NewPassword)
		if _, err := s.firebaseAuth.UpdateUser(ctx, actor.UID, params); err != nil {
			return common.NewError(common.ErrCodeAuthCredentials,
				"Không đổi được mật khẩu", common.StatusInternalServerError, err.Error())
		}
		return nil
	})
}

// RevokeSessions thu hồi mọi refresh token của uid. Gọi sau khi đã gỡ
// các subscription dữ liệu để không còn truy vấn chạy bằng phiên cũ.
func (s *UserService) RevokeSessions(ctx context.Context, uid string) error {
	if err := s.firebaseAuth.RevokeRefreshTokens(ctx, uid); err != nil {
		return common.NewError(common.ErrCodeAuthToken,
			"Không thu hồi được phiên đăng nhập", common.StatusInternalServerError, err.Error())
	}
	return nil
}

// ListClients trả về danh sách tài khoản client (để admin gán vào dự án).
func (s *UserService) ListClients(ctx context.Context) ([]authmodels.User, error) {
	opts := mongoopts.Find().SetSort(bson.D{{Key: "displayName", Value: 1}})
	return s.Find(ctx, bson.M{"role": authmodels.RoleClient}, opts)
}

// runWithToast bọc thao tác ghi với toast loading và toast kết quả.
func (s *UserService) runWithToast(loadingText, successText string, fn func() error) error {
	if s.notifier == nil {
		return fn()
	}
	handle := s.notifier.ShowLoading(loadingText)
	if err := fn(); err != nil {
		handle.Error(common.UserFacingMessage(err))
		return err
	}
	handle.Success(successText)
	return nil
}
