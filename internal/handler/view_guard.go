package handler

import (
	"fmt"
	"log"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/healthdesk/internal/service"
)

// trackSubjectView 是浏览上报的会话层抑制：同一浏览器会话在冷却窗口内
// 对同一主题只触发一次上报，其余情况把上报异步交给 ViewService。
// 抑制只为减少写入量，服务端去重始终是权威判断，会话丢失不影响正确性。
func (a *API) trackSubjectView(c *gin.Context, kind service.SubjectKind, subjectID uint) {
	key := fmt.Sprintf("viewed_%s_%d", kind, subjectID)

	// 同一次请求内的重复调用只生效一次
	latchKey := "__latch_" + key
	if _, fired := c.Get(latchKey); fired {
		return
	}
	c.Set(latchKey, true)

	now := time.Now().UTC()
	sess := sessions.Default(c)
	if raw := sess.Get(key); raw != nil {
		if last, ok := raw.(int64); ok && now.Sub(time.Unix(last, 0)) < a.views.CooldownWindow() {
			return
		}
	}

	sess.Set(key, now.Unix())
	if err := sess.Save(); err != nil {
		c.Error(err)
	}

	// 上报脱离响应路径执行，失败只记录日志，绝不拖慢内容渲染
	identity := clientIdentity(c)
	views := a.views
	go func() {
		if _, err := views.RecordView(kind, subjectID, identity, now); err != nil {
			log.Printf("record %s view for subject %d failed: %v", kind, subjectID, err)
		}
	}()
}
