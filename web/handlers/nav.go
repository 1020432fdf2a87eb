package handlers

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"timeclock.app/timeclock/core"
	"timeclock.app/timeclock/directory"
	"timeclock.app/timeclock/model"
	"timeclock.app/timeclock/web/common"
	"timeclock.app/timeclock/web/middlewares"
)

type NavEntry struct {
	PageID  string `json:"page_id"`
	Name    string `json:"name"`
	Icon    string `json:"icon,omitempty"`
	Enabled bool   `json:"enabled"`
}

// NavHandler lists the pages for the session role. Pages outside the
// role's permission are either omitted or returned disabled, per config.
func NavHandler(gate *core.Gate, registry directory.PermissionRegistry, hideUnauthorized bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		session, ok := middlewares.SessionFromContext(c)
		if !ok {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		pages, err := navPages(gate, registry)
		if err != nil {
			c.JSON(http.StatusInternalServerError, common.NewErrorResponse(err.Error()))
			return
		}

		entries := []NavEntry{}
		for _, page := range pages {
			allowed := gate.CanAccess(session.Role, page.PageID)
			if !allowed && hideUnauthorized {
				continue
			}
			entries = append(entries, NavEntry{
				PageID:  page.PageID,
				Name:    page.Name,
				Icon:    page.Icon,
				Enabled: allowed,
			})
		}

		c.JSON(http.StatusOK, common.NewSuccessResponse(entries))
	}
}

func navPages(gate *core.Gate, registry directory.PermissionRegistry) ([]model.PagePermission, error) {
	if gate.Mode() == core.PermissionModeRolePage && registry != nil {
		return registry.All()
	}
	// Role mode: the fixed page set, names equal to ids.
	pages := make([]model.PagePermission, 0, len(core.DefaultRolePages))
	for pageID, roles := range core.DefaultRolePages {
		pages = append(pages, model.PagePermission{PageID: pageID, Name: pageID, Roles: roles})
	}
	sort.Slice(pages, func(i, j int) bool { return pages[i].PageID < pages[j].PageID })
	return pages, nil
}
