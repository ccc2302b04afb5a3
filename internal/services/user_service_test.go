package services

import (
	"errors"
	"regexp"
	"time"

	"github.com/yukikurage/task-assignment-api/internal/models"
)

func (suite *ServiceTestSuite) TestCreateUser_Basic() {
	result, err := suite.users.CreateUser(suite.ctx, UserInput{Name: " Ann ", Email: " Ann@X.com "})
	suite.Require().NoError(err)

	suite.False(result.EmailDisambiguated)
	suite.Equal("Ann", result.User.Name)
	suite.Equal("ann@x.com", result.User.Email)
	suite.Empty(result.User.PendingTaskIDs())
	suite.False(result.User.DateCreated.IsZero())
}

func (suite *ServiceTestSuite) TestCreateUser_DuplicateEmailDisambiguated() {
	suite.users.now = func() time.Time { return time.UnixMilli(1700000000123) }
	first := suite.createUser("Ann", "ann@x.com")

	result, err := suite.users.CreateUser(suite.ctx, UserInput{Name: "Ann2", Email: "ANN@x.com"})
	suite.Require().NoError(err)

	suite.True(result.EmailDisambiguated)
	suite.Equal("ann+1700000000123@x.com", result.User.Email)
	suite.NotEqual(first.ID, result.User.ID)
	suite.Equal("ann@x.com", suite.reloadUser(first.ID).Email)
}

func (suite *ServiceTestSuite) TestCreateUser_DuplicateEmailUsesCurrentTime() {
	suite.createUser("Ann", "ann@x.com")

	result, err := suite.users.CreateUser(suite.ctx, UserInput{Name: "Ann2", Email: "ann@x.com"})
	suite.Require().NoError(err)
	suite.Regexp(regexp.MustCompile(`^ann\+\d+@x\.com$`), result.User.Email)
}

func (suite *ServiceTestSuite) TestCreateUser_Validation() {
	tests := []struct {
		name  string
		input UserInput
		want  error
	}{
		{name: "missing name", input: UserInput{Email: "a@x.com"}, want: ErrUserNameEmailRequired},
		{name: "missing email", input: UserInput{Name: "A", Email: "   "}, want: ErrUserNameEmailRequired},
		{name: "malformed pending id", input: UserInput{Name: "A", Email: "a@x.com", PendingTasks: []string{"xyz"}}, want: ErrInvalidPendingTaskID},
		{name: "missing pending task", input: UserInput{Name: "A", Email: "a@x.com", PendingTasks: []string{missingID}}, want: ErrTasksNotExist},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			_, err := suite.users.CreateUser(suite.ctx, tt.input)
			suite.True(errors.Is(err, tt.want), "got %v", err)
		})
	}

	count, err := suite.users.CountUsers(suite.ctx, emptyQuery())
	suite.Require().NoError(err)
	suite.Zero(count)
}

func (suite *ServiceTestSuite) TestCreateUser_WithPendingTasksClaimsThem() {
	bob := suite.createUser("Bob", "bob@x.com")
	t1 := suite.createTask("T1", bob.ID)
	t2 := suite.createTask("T2", "")

	ann := suite.createUser("Ann", "ann@x.com", t1.ID, t2.ID)

	suite.Equal([]string{t1.ID, t2.ID}, ann.PendingTaskIDs())
	suite.Empty(suite.reloadUser(bob.ID).PendingTaskIDs())
	suite.Equal("Ann", suite.reloadTask(t1.ID).AssignedUserName)
	suite.Equal(ann.ID, suite.reloadTask(t2.ID).AssignedUser)
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestCreateUser_CompletedPendingTaskRejected() {
	done, err := suite.tasks.CreateTask(suite.ctx, TaskInput{Name: "Done", Deadline: deadline(), Completed: true})
	suite.Require().NoError(err)

	_, err = suite.users.CreateUser(suite.ctx, UserInput{Name: "Ann", Email: "ann@x.com", PendingTasks: []string{done.ID}})
	suite.True(errors.Is(err, ErrCompletedTaskAssignment))
}

func (suite *ServiceTestSuite) TestReplaceUser_DroppingTaskUnassignsIt() {
	ann := suite.createUser("Ann", "ann@x.com")
	t1 := suite.createTask("T1", ann.ID)

	updated, err := suite.users.ReplaceUser(suite.ctx, ann.ID, UserInput{Name: "Ann", Email: "ann@x.com", PendingTasks: []string{}})
	suite.Require().NoError(err)

	suite.Empty(updated.PendingTaskIDs())
	task := suite.reloadTask(t1.ID)
	suite.Equal("", task.AssignedUser)
	suite.Equal(models.UnassignedName, task.AssignedUserName)
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceUser_TakingTaskFromAnotherUser() {
	ann := suite.createUser("Ann", "ann@x.com")
	bob := suite.createUser("Bob", "bob@x.com")
	t1 := suite.createTask("T1", ann.ID)

	updated, err := suite.users.ReplaceUser(suite.ctx, bob.ID, UserInput{Name: "Bob", Email: "bob@x.com", PendingTasks: []string{t1.ID}})
	suite.Require().NoError(err)

	suite.Equal([]string{t1.ID}, updated.PendingTaskIDs())
	suite.Empty(suite.reloadUser(ann.ID).PendingTaskIDs())
	task := suite.reloadTask(t1.ID)
	suite.Equal(bob.ID, task.AssignedUser)
	suite.Equal("Bob", task.AssignedUserName)
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceUser_StaleRemovalLeavesNewOwner() {
	ann := suite.createUser("Ann", "ann@x.com")
	bob := suite.createUser("Bob", "bob@x.com")
	t1 := suite.createTask("T1", ann.ID)

	// leave a stale entry in Ann's list after the task moved to Bob
	suite.Require().NoError(suite.db.Model(&models.Task{}).Where("id = ?", t1.ID).
		Updates(map[string]any{"assigned_user": bob.ID, "assigned_user_name": "Bob"}).Error)
	suite.Require().NoError(suite.db.Create(&models.PendingTask{UserID: bob.ID, TaskID: t1.ID}).Error)

	_, err := suite.users.ReplaceUser(suite.ctx, ann.ID, UserInput{Name: "Ann", Email: "ann@x.com"})
	suite.Require().NoError(err)

	suite.Equal(bob.ID, suite.reloadTask(t1.ID).AssignedUser)
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceUser_RenamePropagatesToTasks() {
	ann := suite.createUser("Ann", "ann@x.com")
	t1 := suite.createTask("T1", ann.ID)

	_, err := suite.users.ReplaceUser(suite.ctx, ann.ID, UserInput{Name: "Annie", Email: "ann@x.com", PendingTasks: []string{t1.ID}})
	suite.Require().NoError(err)

	suite.Equal("Annie", suite.reloadTask(t1.ID).AssignedUserName)
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceUser_IsIdempotent() {
	ann := suite.createUser("Ann", "ann@x.com")
	t1 := suite.createTask("T1", "")
	t2 := suite.createTask("T2", "")
	input := UserInput{Name: "Ann", Email: "ann@x.com", PendingTasks: []string{t1.ID, t2.ID}}

	first, err := suite.users.ReplaceUser(suite.ctx, ann.ID, input)
	suite.Require().NoError(err)
	second, err := suite.users.ReplaceUser(suite.ctx, ann.ID, input)
	suite.Require().NoError(err)

	suite.Equal(first.PendingTaskIDs(), second.PendingTaskIDs())
	suite.ElementsMatch([]string{t1.ID, t2.ID}, second.PendingTaskIDs())
	suite.True(ann.DateCreated.Equal(second.DateCreated))
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceUser_EmailTaken() {
	suite.createUser("Ann", "ann@x.com")
	bob := suite.createUser("Bob", "bob@x.com")

	_, err := suite.users.ReplaceUser(suite.ctx, bob.ID, UserInput{Name: "Bob", Email: "ANN@x.com"})
	suite.True(errors.Is(err, ErrEmailTaken))
	suite.Equal("bob@x.com", suite.reloadUser(bob.ID).Email)
}

func (suite *ServiceTestSuite) TestReplaceUser_MissingTaskRejectsWithoutChanges() {
	ann := suite.createUser("Ann", "ann@x.com")
	t1 := suite.createTask("T1", ann.ID)

	_, err := suite.users.ReplaceUser(suite.ctx, ann.ID, UserInput{Name: "Ann", Email: "ann@x.com", PendingTasks: []string{missingID}})
	suite.True(errors.Is(err, ErrTasksNotExist))
	suite.Equal("One or more tasks do not exist", err.Error())

	suite.Equal([]string{t1.ID}, suite.reloadUser(ann.ID).PendingTaskIDs())
	suite.Equal(ann.ID, suite.reloadTask(t1.ID).AssignedUser)
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceUser_RepeatedTaskIDRejected() {
	ann := suite.createUser("Ann", "ann@x.com")
	t1 := suite.createTask("T1", "")

	_, err := suite.users.ReplaceUser(suite.ctx, ann.ID, UserInput{Name: "Ann", Email: "ann@x.com", PendingTasks: []string{t1.ID, t1.ID}})
	suite.True(errors.Is(err, ErrTasksNotExist), "got %v", err)
	suite.True(errors.Is(err, ErrNotFound))

	suite.Empty(suite.reloadUser(ann.ID).PendingTaskIDs())
	suite.Empty(suite.reloadTask(t1.ID).AssignedUser)
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestCreateUser_RepeatedTaskIDRejected() {
	t1 := suite.createTask("T1", "")

	_, err := suite.users.CreateUser(suite.ctx, UserInput{Name: "Ann", Email: "ann@x.com", PendingTasks: []string{t1.ID, t1.ID}})
	suite.True(errors.Is(err, ErrTasksNotExist), "got %v", err)

	count, err := suite.users.CountUsers(suite.ctx, emptyQuery())
	suite.Require().NoError(err)
	suite.Zero(count)
	suite.Empty(suite.reloadTask(t1.ID).AssignedUser)
}

func (suite *ServiceTestSuite) TestReplaceUser_AddingCompletedTaskRejected() {
	ann := suite.createUser("Ann", "ann@x.com")
	done, err := suite.tasks.CreateTask(suite.ctx, TaskInput{Name: "Done", Deadline: deadline(), Completed: true})
	suite.Require().NoError(err)

	_, err = suite.users.ReplaceUser(suite.ctx, ann.ID, UserInput{Name: "Ann", Email: "ann@x.com", PendingTasks: []string{done.ID}})
	suite.True(errors.Is(err, ErrCompletedTaskAssignment))
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestReplaceUser_NotFoundAndInvalid() {
	_, err := suite.users.ReplaceUser(suite.ctx, missingID, UserInput{Name: "A", Email: "a@x.com"})
	suite.True(errors.Is(err, ErrUserNotFound))

	_, err = suite.users.ReplaceUser(suite.ctx, "bad", UserInput{Name: "A", Email: "a@x.com"})
	suite.True(errors.Is(err, ErrInvalidUserID))

	_, err = suite.users.ReplaceUser(suite.ctx, missingID, UserInput{Name: "A"})
	suite.True(errors.Is(err, ErrUserNameEmailRequired))
}

func (suite *ServiceTestSuite) TestDeleteUser_UnassignsTasks() {
	ann := suite.createUser("Ann", "ann@x.com")
	t1 := suite.createTask("T1", ann.ID)
	t2 := suite.createTask("T2", ann.ID)

	suite.Require().NoError(suite.users.DeleteUser(suite.ctx, ann.ID))

	for _, id := range []string{t1.ID, t2.ID} {
		task := suite.reloadTask(id)
		suite.Equal("", task.AssignedUser)
		suite.Equal(models.UnassignedName, task.AssignedUserName)
	}
	_, err := suite.users.GetUser(suite.ctx, ann.ID)
	suite.True(errors.Is(err, ErrUserNotFound))
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestDeleteUser_NotFound() {
	err := suite.users.DeleteUser(suite.ctx, missingID)
	suite.True(errors.Is(err, ErrUserNotFound))
}

// Exactly one user holds a task no matter how often it changes hands.
func (suite *ServiceTestSuite) TestAssignmentIsExclusive() {
	ann := suite.createUser("Ann", "ann@x.com")
	bob := suite.createUser("Bob", "bob@x.com")
	cat := suite.createUser("Cat", "cat@x.com")
	t1 := suite.createTask("T1", ann.ID)

	_, err := suite.tasks.ReplaceTask(suite.ctx, t1.ID, TaskInput{Name: "T1", Deadline: deadline(), AssignedUser: bob.ID})
	suite.Require().NoError(err)
	_, err = suite.users.ReplaceUser(suite.ctx, cat.ID, UserInput{Name: "Cat", Email: "cat@x.com", PendingTasks: []string{t1.ID}})
	suite.Require().NoError(err)
	_, err = suite.users.ReplaceUser(suite.ctx, ann.ID, UserInput{Name: "Ann", Email: "ann@x.com", PendingTasks: []string{t1.ID}})
	suite.Require().NoError(err)

	suite.Equal(ann.ID, suite.reloadTask(t1.ID).AssignedUser)
	suite.Empty(suite.reloadUser(bob.ID).PendingTaskIDs())
	suite.Empty(suite.reloadUser(cat.ID).PendingTaskIDs())
	suite.assertConsistent()
}

func (suite *ServiceTestSuite) TestDisambiguateEmail() {
	at := time.UnixMilli(42)
	suite.Equal("a+42@b.com", disambiguateEmail("a@b.com", at))
	suite.Equal("local+42", disambiguateEmail("local", at))
}
